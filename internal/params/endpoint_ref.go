// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package params

import (
	"errors"
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// EndpointRef is a symbolic reference to a network endpoint, resolved at
// compile time against the caller's lookup table.
type EndpointRef struct {
	Key string
}

// EndpointRefType is the cty capsule type that carries an *EndpointRef inside
// a payload. Capsules cannot be interpolated into strings or serialized, so an
// unresolved reference can never leak into a plan.
var EndpointRefType = cty.Capsule("endpoint", reflect.TypeOf(EndpointRef{}))

// NewEndpointRef returns a payload value referring to the endpoint named key.
func NewEndpointRef(key string) cty.Value {
	return cty.CapsuleVal(EndpointRefType, &EndpointRef{Key: key})
}

// AsEndpointRef extracts the reference from v. It reports false for any value
// that is not a known, non-null endpoint reference.
func AsEndpointRef(v cty.Value) (*EndpointRef, bool) {
	if !v.Type().Equals(EndpointRefType) || v.IsNull() || !v.IsKnown() {
		return nil, false
	}
	ref, ok := v.EncapsulatedValue().(*EndpointRef)
	return ref, ok
}

// EndpointFunc is the `endpoint(key)` configuration function. It produces an
// endpoint reference rather than an address.
var EndpointFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "key", Type: cty.String},
	},
	Type: function.StaticReturnType(EndpointRefType),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		key := args[0].AsString()
		if key == "" {
			return cty.NilVal, errors.New("endpoint key must not be empty")
		}
		return NewEndpointRef(key), nil
	},
})
