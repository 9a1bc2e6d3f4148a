package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-be/internal/graph/model"
	"storefront-be/internal/logger"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"
)

// Exec runs the validated operation in the request context. Root fields run
// in document order, which gives mutations their required serial execution.
func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)

	var root string
	switch opCtx.Operation.Operation {
	case ast.Query:
		root = "Query"
	case ast.Mutation:
		root = "Mutation"
	default:
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported operation: %s", opCtx.Operation.Operation))
	}

	ex := &execution{es: e, opCtx: opCtx}
	var buf bytes.Buffer
	ex.writeRoot(ctx, &buf, root)

	return graphql.OneShot(&graphql.Response{Data: buf.Bytes(), Errors: ex.errs})
}

type execution struct {
	es    *executableSchema
	opCtx *graphql.OperationContext
	errs  gqlerror.List
}

func (ex *execution) writeRoot(ctx context.Context, buf *bytes.Buffer, root string) {
	fields := graphql.CollectFields(ex.opCtx, ex.opCtx.Operation.SelectionSet, []string{root})

	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSON(buf, f.Alias)
		buf.WriteByte(':')

		if f.Name == "__typename" {
			writeJSON(buf, root)
			continue
		}

		v, err := ex.resolveRootField(ctx, root, f)
		if err != nil {
			ex.errs = append(ex.errs, &gqlerror.Error{
				Err:     err,
				Message: err.Error(),
				Path:    ast.Path{ast.PathName(f.Alias)},
			})
			buf.WriteString("null")
			continue
		}
		ex.writeValue(buf, v, f.Definition.Type, f.Selections)
	}
	buf.WriteByte('}')
}

func (ex *execution) resolveRootField(ctx context.Context, root string, f graphql.CollectedField) (res any, err error) {
	fn, ok := ex.es.fields[root+"."+f.Name]
	if !ok {
		return nil, fmt.Errorf("%s.%s is not implemented", root, f.Name)
	}

	defer func() {
		if r := recover(); r != nil {
			logger.FromCtx(ctx).Error("resolver panicked",
				zap.String("layer", "graph"),
				zap.String("field", root+"."+f.Name),
				zap.Any("panic", r),
			)
			res, err = nil, errors.New(genericErrorMessage)
		}
	}()

	args := f.ArgumentMap(ex.opCtx.Variables)
	next := func(ctx context.Context) (any, error) {
		return fn(ctx, args)
	}

	if d := f.Definition.Directives.ForName("auth"); d != nil && ex.es.directives.Auth != nil {
		var role *model.Role
		if v, ok := d.ArgumentMap(ex.opCtx.Variables)["role"].(string); ok {
			r := model.Role(v)
			role = &r
		}
		res, err = ex.es.directives.Auth(ctx, nil, next, role)
	} else {
		res, err = next(ctx)
	}
	if err != nil || res == nil {
		return nil, err
	}
	return toGeneric(res)
}

// writeValue serialises v for a field of type typ, keeping only the fields
// named in sel for object types.
func (ex *execution) writeValue(buf *bytes.Buffer, v any, typ *ast.Type, sel ast.SelectionSet) {
	if v == nil {
		buf.WriteString("null")
		return
	}

	if typ.Elem != nil {
		list, _ := v.([]any)
		buf.WriteByte('[')
		for i, item := range list {
			if i > 0 {
				buf.WriteByte(',')
			}
			ex.writeValue(buf, item, typ.Elem, sel)
		}
		buf.WriteByte(']')
		return
	}

	def := ex.es.Schema().Types[typ.NamedType]
	if def == nil || def.Kind != ast.Object {
		writeJSON(buf, v)
		return
	}

	obj, _ := v.(map[string]any)
	fields := graphql.CollectFields(ex.opCtx, sel, []string{def.Name})
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSON(buf, f.Alias)
		buf.WriteByte(':')
		if f.Name == "__typename" {
			writeJSON(buf, def.Name)
			continue
		}
		ex.writeValue(buf, obj[f.Name], f.Definition.Type, f.Selections)
	}
	buf.WriteByte('}')
}

// decodeArgs copies a coerced argument map into dst, matching JSON tags to
// argument names.
func decodeArgs(args map[string]any, dst any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func toGeneric(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return out, nil
}

func writeJSON(buf *bytes.Buffer, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		buf.WriteString("null")
		return
	}
	buf.Write(b)
}
