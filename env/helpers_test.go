package env

import (
	"fmt"
	"strconv"
)

func str() *Var[string] {
	return New(func(raw string) (string, error) { return raw, nil }).WithType("str")
}

func port() *Var[int] {
	return New(func(raw string) (int, error) {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 65535 {
			return 0, fmt.Errorf("invalid port input: %q", raw)
		}
		return n, nil
	}).WithType("port")
}

func boolean() *Var[bool] {
	return New(strconv.ParseBool).WithType("bool")
}

// recorder captures reporter calls.
type recorder struct {
	calls   int
	results []Result
}

func (r *recorder) Report(res Result) {
	r.calls++
	r.results = append(r.results, res)
}

func (r *recorder) last() Result {
	return r.results[len(r.results)-1]
}
