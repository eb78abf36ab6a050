package main

import (
	"strconv"
	"strings"

	"github.com/benz9527/xtree/lib/infra"
)

type opKind uint8

const (
	opInsert opKind = iota
	opDelete
	opSearch
	opDeleteMin
)

type op struct {
	kind opKind
	key  int64
	raw  string
}

// parseOp accepts "+k" insert, "-k" delete, "?k" search and "popmin".
// A bare key means insert.
func parseOp(raw string) (op, error) {
	s := strings.TrimSpace(raw)
	if strings.EqualFold(s, "popmin") {
		return op{kind: opDeleteMin, raw: s}, nil
	}
	if len(s) == 0 {
		return op{}, infra.NewErrorStack("empty op")
	}
	res := op{kind: opInsert, raw: s}
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		// "--5" deletes the key -5.
		res.kind, s = opDelete, s[1:]
	case '?':
		res.kind, s = opSearch, s[1:]
	}
	key, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return op{}, infra.WrapErrorStackWithMessage(err, "invalid op "+raw)
	}
	res.key = key
	return res, nil
}
