// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package json

import (
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
)

var _ rpc.Codec = (*lowercase)(nil)

type lowercase struct {
	*json2.Codec
}

// NewCodec returns a JSON-RPC 2.0 codec that accepts method names starting
// with a lowercase letter, so "token.getBalance" calls Service.GetBalance.
func NewCodec() rpc.Codec {
	return lowercase{json2.NewCodec()}
}

func (lc lowercase) NewRequest(r *http.Request) rpc.CodecRequest {
	return &request{lc.Codec.NewRequest(r)}
}

type request struct {
	rpc.CodecRequest
}

func (r *request) Method() (string, error) {
	method, err := r.CodecRequest.Method()
	if err != nil {
		return method, err
	}
	class, function, ok := strings.Cut(method, ".")
	if !ok {
		return method, nil
	}
	first, size := utf8.DecodeRuneInString(function)
	if first == utf8.RuneError {
		return method, nil
	}
	return class + "." + string(unicode.ToUpper(first)) + function[size:], nil
}
