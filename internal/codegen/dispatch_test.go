package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectDispatcher(t *testing.T) {
	tests := []struct {
		async, schema bool
		want          string
	}{
		{false, false, "methodToHandler"},
		{true, false, "asyncMethodToHandler"},
		{false, true, "methodToHandlerWithSchema"},
		{true, true, "asyncMethodToHandlerWithSchema"},
	}
	for _, tt := range tests {
		d := SelectDispatcher(tt.async, tt.schema)
		assert.Equal(t, tt.want, d.String())
		assert.Equal(t, tt.async, d.Async())
		assert.Equal(t, tt.schema, d.WithSchema())
	}
}

func TestDispatcherCall(t *testing.T) {
	assert.Equal(t, "methodToHandler(controller0.get)",
		MethodToHandler.Call("controller0", "get", false))
	assert.Equal(t, "asyncMethodToHandler(controller2.post.handler)",
		AsyncMethodToHandler.Call("controller2", "post", true))
	assert.Equal(t, "asyncMethodToHandlerWithSchema(controller0.get.handler, controller0.get.schemas.response)",
		AsyncMethodToHandlerWithSchema.Call("controller0", "get", true))
}

func TestDispatcherString_OutOfRange(t *testing.T) {
	assert.Equal(t, "Dispatcher(9)", Dispatcher(9).String())
}

func TestIsSchemaDispatcher(t *testing.T) {
	for _, d := range Dispatchers {
		assert.Equal(t, d.WithSchema(), isSchemaDispatcher(d.String()), d.String())
	}
	assert.False(t, isSchemaDispatcher("parseJSONBody"))
}
