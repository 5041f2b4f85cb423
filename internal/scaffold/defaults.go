// Package scaffold writes the per-directory support files of a route tree:
// default route files for brand-new directories and the $relay.ts helper that
// gives directory-local files their types.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/frourio/frourio-express/internal/routetree"
	"github.com/frourio/frourio-express/internal/writer"
)

const defaultIndex = `import type { DefineMethods } from 'aspida';

export type Methods = DefineMethods<{
  get: {
    resBody: string;
  };
}>;
`

const defaultController = `import { defineController } from './$relay';

export default defineController(() => ({
  get: () => ({ status: 200, body: 'Hello' }),
}));
`

const defaultHooks = `import { defineHooks } from './$relay';

export default defineHooks(() => ({
  onRequest: (req, res, next) => {
    console.log('Directory level onRequest hook:', req.path);
    next();
  },
}));
`

const defaultValidators = `import { z } from 'zod';
import { defineValidators } from './$relay';

export default defineValidators(() => ({
  params: z.object({ %s: %s }),
}));
`

// EnsureDefaults fills in missing route files of dir. A directory with no
// entries at all gets a default index.ts and controller.ts. An empty hooks.ts
// is replaced by the default hooks template, and an empty validators.ts in a
// dynamic directory by a params validator for param. Anything else is left
// alone.
func EnsureDefaults(dir string, param *routetree.Param) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	if len(entries) == 0 {
		if err := writeIfMissing(filepath.Join(dir, routetree.IndexFile), defaultIndex); err != nil {
			return err
		}
		if err := writeIfMissing(filepath.Join(dir, routetree.ControllerFile), defaultController); err != nil {
			return err
		}
	}

	if err := fillIfEmpty(filepath.Join(dir, routetree.HooksFile), defaultHooks); err != nil {
		return err
	}

	if param != nil {
		schema := "z.string()"
		if param.Type == "number" {
			schema = "z.number()"
		}
		text := fmt.Sprintf(defaultValidators, param.Name, schema)
		if err := fillIfEmpty(filepath.Join(dir, routetree.ValidatorsFile), text); err != nil {
			return err
		}
	}
	return nil
}

func writeIfMissing(path, text string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	_, err := writer.WriteString(path, text)
	return err
}

func fillIfEmpty(path, text string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() > 0 {
		return nil
	}
	_, err = writer.WriteString(path, text)
	return err
}
