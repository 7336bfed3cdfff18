package config

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Limit is an optional integer bound. The source documents use -1 to
// mean "no limit"; Limit makes that variant explicit while serializing
// back to -1 so resolved documents stay compatible with the original
// format.
type Limit struct {
	value   int
	bounded bool
}

// Unbounded returns a Limit with no bound.
func Unbounded() Limit {
	return Limit{}
}

// LimitOf returns a Limit bounded at n. Non-positive values collapse to
// Unbounded, matching the sentinel semantics of the source format.
func LimitOf(n int) Limit {
	if n <= 0 {
		return Unbounded()
	}
	return Limit{value: n, bounded: true}
}

// Bounded reports whether the limit is in effect.
func (l Limit) Bounded() bool {
	return l.bounded
}

// Value returns the bound and whether one is set.
func (l Limit) Value() (int, bool) {
	return l.value, l.bounded
}

// Int returns the wire representation: the bound, or -1 when unbounded.
func (l Limit) Int() int {
	if !l.bounded {
		return -1
	}
	return l.value
}

func (l Limit) String() string {
	if !l.bounded {
		return "unbounded"
	}
	return fmt.Sprintf("%d", l.value)
}

// MarshalYAML serializes the limit as its wire integer.
func (l Limit) MarshalYAML() (interface{}, error) {
	return l.Int(), nil
}

// UnmarshalYAML accepts an integer, treating any non-positive value as
// unbounded.
func (l *Limit) UnmarshalYAML(node *yaml.Node) error {
	var n int
	if err := node.Decode(&n); err != nil {
		return fmt.Errorf("limit must be an integer: %w", err)
	}
	*l = LimitOf(n)
	return nil
}

// limitDecodeHook converts raw scalar values (from viper's merged maps
// or environment strings) into Limit fields during unmarshal.
func limitDecodeHook() mapstructure.DecodeHookFuncType {
	limitType := reflect.TypeOf(Limit{})
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != limitType || from == limitType {
			return data, nil
		}
		n, err := cast.ToIntE(data)
		if err != nil {
			return nil, fmt.Errorf("limit must be an integer, got %v: %w", data, err)
		}
		return LimitOf(n), nil
	}
}
