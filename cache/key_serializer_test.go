package cache

import (
	"strings"
	"testing"
)

func joinWithSeparator(parts ...string) string {
	return strings.Join(parts, KeySeparator)
}

func TestDefaultKeySerializer_BasicTypes(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	tests := []struct {
		name      string
		operation string
		args      []any
		want      string
	}{
		{
			name:      "no args",
			operation: "product.get_all",
			args:      []any{},
			want:      "product.get_all",
		},
		{
			name:      "single string",
			operation: "product.get_by_id",
			args:      []any{"prod-001"},
			want:      joinWithSeparator("product.get_by_id", "prod-001"),
		},
		{
			name:      "listing params",
			operation: "product.get_all",
			args:      []any{0, 20, "phone", "eletronicos"},
			want:      joinWithSeparator("product.get_all", "0", "20", "phone", "eletronicos"),
		},
		{
			name:      "bool and float",
			operation: "op",
			args:      []any{true, 3.14},
			want:      joinWithSeparator("op", "true", "3.14"),
		},
		{
			name:      "string with separator chars",
			operation: "op",
			args:      []any{"hello:world"},
			want:      joinWithSeparator("op", "hello:world"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serializer.SerializeKey(tt.operation, tt.args...)
			if got != tt.want {
				t.Errorf("SerializeKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultKeySerializer_LowercasesStrings(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	upper := serializer.SerializeKey("product.get_all", 0, 20, "PHONE", "Eletronicos")
	lower := serializer.SerializeKey("product.get_all", 0, 20, "phone", "eletronicos")

	if upper != lower {
		t.Errorf("case variants should share a key: %v != %v", upper, lower)
	}
}

func TestDefaultKeySerializer_NilValues(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	tests := []struct {
		name      string
		operation string
		args      []any
		want      string
	}{
		{
			name:      "nil interface",
			operation: "op",
			args:      []any{nil},
			want:      joinWithSeparator("op", "nil"),
		},
		{
			name:      "nil pointer",
			operation: "op",
			args:      []any{(*int)(nil)},
			want:      joinWithSeparator("op", "nil"),
		},
		{
			name:      "nil slice",
			operation: "op",
			args:      []any{([]int)(nil)},
			want:      joinWithSeparator("op", "slice:nil"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serializer.SerializeKey(tt.operation, tt.args...)
			if got != tt.want {
				t.Errorf("SerializeKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultKeySerializer_Slices(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	tests := []struct {
		name      string
		operation string
		args      []any
		want      string
	}{
		{
			name:      "empty slice",
			operation: "op",
			args:      []any{[]int{}},
			want:      joinWithSeparator("op", "slice[0]:{}"),
		},
		{
			name:      "int slice",
			operation: "op",
			args:      []any{[]int{1, 2, 3}},
			want:      joinWithSeparator("op", "slice[3]:{1,2,3}"),
		},
		{
			name:      "string slice lowercased",
			operation: "op",
			args:      []any{[]string{"Alice", "BOB"}},
			want:      joinWithSeparator("op", "slice[2]:{alice,bob}"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serializer.SerializeKey(tt.operation, tt.args...)
			if got != tt.want {
				t.Errorf("SerializeKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultKeySerializer_Pointers(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	value := 42
	got := serializer.SerializeKey("op", &value)
	want := joinWithSeparator("op", "42")
	if got != want {
		t.Errorf("SerializeKey() = %v, want %v", got, want)
	}
}

func TestDefaultKeySerializer_Stability(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	args := []any{1, "hello", []int{1, 2, 3}}

	key1 := serializer.SerializeKey("op", args...)
	key2 := serializer.SerializeKey("op", args...)

	if key1 != key2 {
		t.Errorf("key serialization should be stable across runs: %v != %v", key1, key2)
	}
}

func TestDefaultKeySerializer_StructFallback(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	type filters struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}

	key := serializer.SerializeKey("op", filters{Name: "phone", Category: "eletronicos"})
	want := joinWithSeparator("op", `json:{"name":"phone","category":"eletronicos"}`)
	if key != want {
		t.Errorf("SerializeKey() = %v, want %v", key, want)
	}
}

func BenchmarkDefaultKeySerializer(b *testing.B) {
	serializer := NewDefaultKeySerializer()
	args := []any{0, 20, "phone", "eletronicos"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		serializer.SerializeKey("product.get_all", args...)
	}
}
