package config

import (
	"slices"
	"strings"
)

type resolveContext struct {
	source  *Object
	options ResolveOptions
	env     *Object
	memo    map[string]Value
	stack   []string
}

func resolveObject(root, source *Object, options ResolveOptions) (*Object, error) {
	if root.ResolveStatus() == Resolved {
		return root, nil
	}

	ctx := &resolveContext{
		source:  source,
		options: options,
		memo:    map[string]Value{},
	}

	if options.Env != nil {
		ctx.env = EnvVariablesAsConfigObject(options.Env)
	}

	return ctx.resolveObject(root)
}

// resolve returns the resolved value; keep is false when an optional
// substitution had no target and the value should disappear.
func (ctx *resolveContext) resolve(v Value) (Value, bool, error) {
	if v.ResolveStatus() == Resolved {
		return v, true, nil
	}

	switch value := v.(type) {
	case *Object:
		obj, err := ctx.resolveObject(value)

		return obj, true, err
	case *List:
		list, err := ctx.resolveList(value)

		return list, true, err
	case *Substitution:
		return ctx.lookup(value)
	case *Concatenation:
		return ctx.concatenate(value)
	case *DelayedMerge:
		return ctx.merge(value)
	default:
		return v, true, nil
	}
}

func (ctx *resolveContext) resolveObject(obj *Object) (*Object, error) {
	if obj.ResolveStatus() == Resolved {
		return obj, nil
	}

	keys := make([]string, 0, len(obj.keys))
	values := make(map[string]Value, len(obj.keys))
	changed := false

	for _, key := range obj.keys {
		old := obj.values[key]

		v, keep, err := ctx.resolve(old)
		if err != nil {
			return nil, err
		}

		if !keep {
			changed = true

			continue
		}

		if v != old {
			changed = true
		}

		keys = append(keys, key)
		values[key] = v
	}

	if !changed {
		return obj, nil
	}

	return newObject(obj.origin, keys, values), nil
}

func (ctx *resolveContext) resolveList(list *List) (*List, error) {
	values := make([]Value, 0, len(list.values))
	changed := false

	for _, old := range list.values {
		v, keep, err := ctx.resolve(old)
		if err != nil {
			return nil, err
		}

		if !keep {
			changed = true

			continue
		}

		if v != old {
			changed = true
		}

		values = append(values, v)
	}

	if !changed {
		return list, nil
	}

	return NewList(list.origin, values), nil
}

func (ctx *resolveContext) lookup(sub *Substitution) (Value, bool, error) {
	key := sub.path.Render()

	if v, ok := ctx.memo[key]; ok {
		return v, true, nil
	}

	if slices.Contains(ctx.stack, key) {
		cycle := append(slices.Clone(ctx.stack), key)

		return nil, false, newError(ErrUnresolvedSubstitution, sub.origin, key,
			"cycle in substitutions: %s", strings.Join(cycle, " -> "))
	}

	ctx.stack = append(ctx.stack, key)
	defer func() { ctx.stack = ctx.stack[:len(ctx.stack)-1] }()

	target, err := ctx.locate(ctx.source, sub.path)
	if err != nil {
		return nil, false, err
	}

	if target == nil && ctx.env != nil {
		target, _ = ctx.env.peekPath(sub.path)
	}

	if target == nil {
		switch {
		case sub.optional:
			return nil, false, nil
		case ctx.options.AllowUnresolved:
			return sub, true, nil
		default:
			return nil, false, newError(ErrUnresolvedSubstitution, sub.origin, key,
				"could not resolve substitution to a value: %s", sub.Render())
		}
	}

	resolved, keep, err := ctx.resolve(target)
	if err != nil {
		return nil, false, err
	}

	if !keep {
		// the target was itself an optional substitution without a target
		switch {
		case sub.optional:
			return nil, false, nil
		case ctx.options.AllowUnresolved:
			return sub, true, nil
		default:
			return nil, false, newError(ErrUnresolvedSubstitution, sub.origin, key,
				"could not resolve substitution to a value: %s", sub.Render())
		}
	}

	if resolved.ResolveStatus() == Resolved {
		ctx.memo[key] = resolved
	}

	return resolved, true, nil
}

// locate walks path in obj, resolving placeholders met on the way.
func (ctx *resolveContext) locate(obj *Object, path Path) (Value, error) {
	v, ok := obj.Get(path.First())
	if !ok {
		return nil, nil
	}

	rest := path.Remainder()
	if rest.Empty() {
		return v, nil
	}

	if v.Type() == TypeUnresolved {
		resolved, keep, err := ctx.resolve(v)
		if err != nil || !keep {
			return nil, err
		}

		v = resolved
	}

	child, isObject := v.(*Object)
	if !isObject {
		return nil, nil
	}

	return ctx.locate(child, rest)
}

func (ctx *resolveContext) concatenate(concat *Concatenation) (Value, bool, error) {
	var b strings.Builder

	for _, part := range concat.parts {
		v, keep, err := ctx.resolve(part)
		if err != nil {
			return nil, false, err
		}

		if !keep {
			continue
		}

		switch piece := v.(type) {
		case *String:
			b.WriteString(piece.Text())
		case *Number, *Boolean, *Null:
			b.WriteString(piece.Render())
		case *Substitution, *Concatenation, *DelayedMerge:
			// left unresolved on request, keep the whole concatenation
			return concat, true, nil
		default:
			return nil, false, newError(ErrWrongType, part.Origin(), "",
				"cannot concatenate %s %s into a string", v.Type(), v.Render())
		}
	}

	return NewString(concat.origin, b.String(), Quoted), true, nil
}

// merge resolves every layer and stacks the results with the usual
// fallback rules. Layers that vanish are skipped; when all of them vanish
// the value vanishes too.
func (ctx *resolveContext) merge(dm *DelayedMerge) (Value, bool, error) {
	var merged Value

	for _, layer := range dm.layers {
		v, keep, err := ctx.resolve(layer)
		if err != nil {
			return nil, false, err
		}

		if !keep {
			continue
		}

		if v.ResolveStatus() != Resolved {
			// left unresolved on request, keep the whole stack
			return dm, true, nil
		}

		if merged == nil {
			merged = v

			continue
		}

		merged = mergeValues(merged, v)
	}

	if merged == nil {
		return nil, false, nil
	}

	return merged, true, nil
}
