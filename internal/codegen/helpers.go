package codegen

// helper is a runtime function of the generated server, emitted only when a
// route pipeline references it.
type helper struct {
	name string
	// token is searched for in the mount text.
	token string
	text  string
}

var helpers = []helper{
	{
		name:  helperNumberQuery,
		token: helperNumberQuery + "(",
		text: `const parseNumberTypeQueryParams = (numberTypeParams: [string, boolean, boolean][]): RequestHandler => ({ query }, res, next) => {
  for (const [key, isOptional, isArray] of numberTypeParams) {
    const param = query[key];

    if (isArray) {
      if (!isOptional && param === undefined) {
        query[key] = [];
      } else if (!isOptional || param !== undefined) {
        if (!Array.isArray(param)) {
          res.sendStatus(400);
          return;
        }

        const vals = (param as string[]).map(Number);

        if (vals.some(isNaN)) {
          res.sendStatus(400);
          return;
        }

        query[key] = vals as any;
      }
    } else if (!isOptional || param !== undefined) {
      const val = Number(param);

      if (isNaN(val)) {
        res.sendStatus(400);
        return;
      }

      query[key] = val as any;
    }
  }

  next();
};
`,
	},
	{
		name:  helperBooleanQuery,
		token: helperBooleanQuery + "(",
		text: `const parseBooleanTypeQueryParams = (booleanTypeParams: [string, boolean, boolean][]): RequestHandler => ({ query }, res, next) => {
  for (const [key, isOptional, isArray] of booleanTypeParams) {
    const param = query[key];

    if (isArray) {
      if (!isOptional && param === undefined) {
        query[key] = [];
      } else if (!isOptional || param !== undefined) {
        if (!Array.isArray(param)) {
          res.sendStatus(400);
          return;
        }

        const vals = (param as string[]).map(p => p === 'true' ? true : p === 'false' ? false : null);

        if (vals.some(v => v === null)) {
          res.sendStatus(400);
          return;
        }

        query[key] = vals as any;
      }
    } else if (!isOptional || param !== undefined) {
      const val = param === 'true' ? true : param === 'false' ? false : null;

      if (val === null) {
        res.sendStatus(400);
        return;
      }

      query[key] = val as any;
    }
  }

  next();
};
`,
	},
	{
		name:  helperIfQuery,
		token: helperIfQuery + "(",
		text: `const callParserIfExistsQuery = (parser: RequestHandler): RequestHandler => (req, res, next) =>
  Object.keys(req.query).length ? parser(req, res, next) : next();
`,
	},
	{
		name:  helperJSONBody,
		token: helperJSONBody,
		text: `const parseJSONBody: RequestHandler = (req, res, next) => {
  express.json()(req, res, err => {
    if (err !== undefined) {
      res.sendStatus(400);
      return;
    }

    next();
  });
};
`,
	},
	{
		name:  helperTypedParams,
		token: helperTypedParams + "(",
		text: `const createTypedParamsHandler = (numberTypeParams: string[]): RequestHandler => (req, res, next) => {
  const params: Record<string, string | number> = req.params;

  for (const key of numberTypeParams) {
    const val = Number(params[key]);

    if (isNaN(val)) {
      res.sendStatus(400);
      return;
    }

    params[key] = val;
  }

  next();
};
`,
	},
	{
		name:  helperValidator,
		token: helperValidator + "(",
		text: `const validatorCompiler = (key: 'params' | 'query' | 'headers' | 'body', validator: z.ZodType<any>): RequestHandler => (req, res, next) => {
  const result = validator.safeParse(req[key]);

  if (result.success) {
    req[key] = result.data;
    next();
  } else {
    res.status(400).send(result.error);
  }
};
`,
	},
	{
		name:  helperMulterData,
		token: helperMulterData + "(",
		text: `const formatMulterData = (arrayTypeKeys: [string, boolean][]): RequestHandler => ({ body, files }, _res, next) => {
  for (const [key] of arrayTypeKeys) {
    if (body[key] === undefined) body[key] = [];
    else if (!Array.isArray(body[key])) {
      body[key] = [body[key]];
    }
  }

  for (const file of files as Express.Multer.File[]) {
    if (Array.isArray(body[file.fieldname])) {
      body[file.fieldname].push(file);
    } else {
      body[file.fieldname] = file;
    }
  }

  for (const [key, isOptional] of arrayTypeKeys) {
    if (body[key].length === 0 && isOptional) delete body[key];
  }

  next();
};
`,
	},
	{
		name:  MethodToHandler.String(),
		token: MethodToHandler.String() + "(",
		text: `const methodToHandler = (
  methodCallback: ServerHandler<any, any>,
): RequestHandler => (req, res, next) => {
  try {
    const data = methodCallback(req as any) as any;

    if (data.headers !== undefined) {
      for (const key in data.headers) {
        res.setHeader(key, data.headers[key]);
      }
    }

    res.status(data.status).send(data.body);
  } catch (e) {
    next(e);
  }
};
`,
	},
	{
		name:  AsyncMethodToHandler.String(),
		token: AsyncMethodToHandler.String() + "(",
		text: `const asyncMethodToHandler = (
  methodCallback: ServerHandlerPromise<any, any>,
): RequestHandler => async (req, res, next) => {
  try {
    const data = await methodCallback(req as any) as any;

    if (data.headers !== undefined) {
      for (const key in data.headers) {
        res.setHeader(key, data.headers[key]);
      }
    }

    res.status(data.status).send(data.body);
  } catch (e) {
    next(e);
  }
};
`,
	},
	{
		name:  MethodToHandlerWithSchema.String(),
		token: MethodToHandlerWithSchema.String() + "(",
		text: `const methodToHandlerWithSchema = (
  methodCallback: ServerHandler<any, any>,
  schema: { [K in HttpStatusOk]?: Schema },
): RequestHandler => {
  const stringifySet = createStringifySet(schema);

  return (req, res, next) => {
    try {
      const data = methodCallback(req as any) as any;
      const stringify = stringifySet[data.status as HttpStatusOk];

      if (stringify !== undefined) {
        res.set('content-type', 'application/json; charset=utf-8');
      }

      if (data.headers !== undefined) {
        for (const key in data.headers) {
          res.setHeader(key, data.headers[key]);
        }
      }

      res.status(data.status).send(stringify !== undefined ? stringify(data.body) : data.body);
    } catch (e) {
      next(e);
    }
  };
};
`,
	},
	{
		name:  AsyncMethodToHandlerWithSchema.String(),
		token: AsyncMethodToHandlerWithSchema.String() + "(",
		text: `const asyncMethodToHandlerWithSchema = (
  methodCallback: ServerHandlerPromise<any, any>,
  schema: { [K in HttpStatusOk]?: Schema },
): RequestHandler => {
  const stringifySet = createStringifySet(schema);

  return async (req, res, next) => {
    try {
      const data = await methodCallback(req as any) as any;
      const stringify = stringifySet[data.status as HttpStatusOk];

      if (stringify !== undefined) {
        res.set('content-type', 'application/json; charset=utf-8');
      }

      if (data.headers !== undefined) {
        for (const key in data.headers) {
          res.setHeader(key, data.headers[key]);
        }
      }

      res.status(data.status).send(stringify !== undefined ? stringify(data.body) : data.body);
    } catch (e) {
      next(e);
    }
  };
};
`,
	},
}

// stringifySetText is shared by the schema dispatchers.
const stringifySetText = `const createStringifySet = (schema: { [K in HttpStatusOk]?: Schema }) =>
  Object.entries(schema).reduce(
    (prev, [key, val]) => ({ ...prev, [key]: fastJson(val!) }),
    {} as Record<HttpStatusOk, ReturnType<typeof fastJson> | undefined>,
  );
`
