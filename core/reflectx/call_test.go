package reflectx

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type Celsius float64

type TestStructForCall struct{}

func (t *TestStructForCall) Method1(name string) string {
	return "hello " + name
}

func (t *TestStructForCall) Method2(a, b int) (int, error) {
	if b == 0 {
		return 0, errors.New("division by zero")
	}
	return a / b, nil
}

func (t *TestStructForCall) Method3(w io.Writer) bool {
	return w == nil
}

func (t *TestStructForCall) Method4(in []float64) int {
	return len(in)
}

func (t *TestStructForCall) Method5(c Celsius) string {
	return fmt.Sprintf("%.1f", float64(c))
}

func (t *TestStructForCall) Method6(prefix string, parts ...string) string {
	return prefix + strings.Join(parts, ",")
}

func TestCallValue(t *testing.T) {
	input := &TestStructForCall{}

	tests := []struct {
		name      string
		method    string
		args      []any
		wantLen   int
		wantErr   error
		wantValue any
	}{
		{
			name:    "MethodX unsupported method",
			method:  "MethodX",
			args:    []any{},
			wantErr: ErrMethodNotFound,
		},
		{
			name:      "Method1 with string input",
			method:    "Method1",
			args:      []any{"Alice"},
			wantLen:   1,
			wantValue: "hello Alice",
		},
		{
			name:    "Method1 with incorrect args count",
			method:  "Method1",
			args:    []any{"Alice", "Bob"},
			wantErr: ErrIncorrectArgumentCount,
		},
		{
			name:    "Method1 with incorrect value type",
			method:  "Method1",
			args:    []any{42},
			wantErr: ErrInvalidArgumentValue,
		},
		{
			name:      "Method2 with error result",
			method:    "Method2",
			args:      []any{9, 3},
			wantLen:   2,
			wantValue: 3,
		},
		{
			name:      "Method3 with nil interface",
			method:    "Method3",
			args:      []any{nil},
			wantLen:   1,
			wantValue: true,
		},
		{
			name:      "Method3 with interface implementation",
			method:    "Method3",
			args:      []any{&strings.Builder{}},
			wantLen:   1,
			wantValue: false,
		},
		{
			name:      "Method4 with nil slice",
			method:    "Method4",
			args:      []any{nil},
			wantLen:   1,
			wantValue: 0,
		},
		{
			name:      "Method5 with convertible input",
			method:    "Method5",
			args:      []any{36.6},
			wantLen:   1,
			wantValue: "36.6",
		},
		{
			name:      "Method6 with variadic slice",
			method:    "Method6",
			args:      []any{"p:", []string{"a", "b"}},
			wantLen:   1,
			wantValue: "p:a,b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := CallValue(reflect.ValueOf(input).MethodByName(tt.method), tt.args...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, resp, tt.wantLen)
			if tt.wantValue != nil {
				require.Equal(t, tt.wantValue, resp[0])
			}
		})
	}
}

func TestValidateArguments(t *testing.T) {
	fn := reflect.TypeOf(func(a, b int) int { return a + b })
	require.NoError(t, ValidateArguments(fn, 1, 2))
	require.ErrorIs(t, ValidateArguments(fn, 1), ErrIncorrectArgumentCount)
	require.ErrorIs(t, ValidateArguments(fn, "1", 2), ErrInvalidArgumentValue)
	require.ErrorIs(t, ValidateArguments(fn, nil, 2), ErrInvalidArgumentValue)
}

func TestZeroValues(t *testing.T) {
	fn := reflect.TypeOf((*TestStructForCall)(nil).Method2)
	require.True(t, FuncReturnsError(fn))
	require.Equal(t, []any{0, error(nil)}, ZeroValues(Results(fn)))
	require.False(t, FuncReturnsError(reflect.TypeOf((*TestStructForCall)(nil).Method1)))
}
