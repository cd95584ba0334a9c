package utils

import (
	"testing"
)

func TestGetEnv(t *testing.T) {
	if got := GetEnv("BF_TEST_MISSING", "fallback", nil); got != "fallback" {
		t.Fatalf("missing var: want=fallback got=%q", got)
	}
	t.Setenv("BF_TEST_STR", "value")
	if got := GetEnv("BF_TEST_STR", "fallback", nil); got != "value" {
		t.Fatalf("set var: want=value got=%q", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	cases := []struct {
		name string
		set  bool
		val  string
		want int
	}{
		{name: "missing uses default", want: 7},
		{name: "parses value", set: true, val: "42", want: 42},
		{name: "garbage uses default", set: true, val: "twenty", want: 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.set {
				t.Setenv("BF_TEST_INT", tc.val)
			}
			if got := GetEnvAsInt("BF_TEST_INT", 7, nil); got != tc.want {
				t.Fatalf("want=%d got=%d", tc.want, got)
			}
		})
	}
}

func TestGetEnvAsFloat(t *testing.T) {
	cases := []struct {
		name string
		set  bool
		val  string
		want float64
	}{
		{name: "missing uses default", want: 1500},
		{name: "parses value", set: true, val: "1750.50", want: 1750.50},
		{name: "garbage uses default", set: true, val: "free", want: 1500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.set {
				t.Setenv("BF_TEST_FLOAT", tc.val)
			}
			if got := GetEnvAsFloat("BF_TEST_FLOAT", 1500, nil); got != tc.want {
				t.Fatalf("want=%v got=%v", tc.want, got)
			}
		})
	}
}

func TestGetEnvAsBool(t *testing.T) {
	if got := GetEnvAsBool("BF_TEST_BOOL", true, nil); !got {
		t.Fatal("missing var: want default true")
	}
	t.Setenv("BF_TEST_BOOL", "false")
	if got := GetEnvAsBool("BF_TEST_BOOL", true, nil); got {
		t.Fatal("set var: want false")
	}
}
