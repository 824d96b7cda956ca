package library

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestClassify(t *testing.T) {
	var testCases = []struct {
		description string
		reference   string
		expect      Kind
	}{
		{description: "file name", reference: "lib.so", expect: Relative},
		{description: "nested path", reference: "sub/dir/lib.so", expect: Relative},
		{description: "rooted path", reference: "/opt/udf/lib.so", expect: Relative},
		{description: "file url", reference: "file:///tmp/lib.so", expect: Absolute},
		{description: "https url", reference: "https://host/lib.tar.gz", expect: Absolute},
		{description: "object store url", reference: "s3a://bucket/libs/", expect: Absolute},
		{description: "authority without scheme", reference: "//host/lib.so", expect: Absolute},
		{description: "encoded characters", reference: "lib%20x.so", expect: Absolute},
		{description: "alias fragment", reference: "lib.so#mylib", expect: Absolute},
		{description: "query", reference: "lib.so?v=1", expect: Absolute},
		{description: "invalid escape", reference: "lib%zz.so", expect: Absolute},
		{description: "space", reference: "my lib.so", expect: Absolute},
		{description: "pipe", reference: "a|b.so", expect: Absolute},
		{description: "braces", reference: "lib{1}.so", expect: Absolute},
		{description: "backslash", reference: "dir\\lib.so", expect: Absolute},
		{description: "sub delimiters", reference: "lib(1)+v2.so", expect: Relative},
		{description: "non ascii", reference: "bibliothèque.so", expect: Relative},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, Classify(testCase.reference), testCase.description)
	}
}
