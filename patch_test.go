package vjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patchTarget() Value {
	return Read(`{"a":[10,20,30],"o":{"x":1}}`)
}

func TestSetPathArray(t *testing.T) {
	doc := patchTarget()
	require.NoError(t, SetPath(&doc, "/a/1", Int(99)))
	assert.True(t, doc.Equal(Read(`{"a":[10,99,30],"o":{"x":1}}`)))
}

func TestSetPathArrayGrows(t *testing.T) {
	doc := patchTarget()
	require.NoError(t, SetPath(&doc, "/a/5", Int(1)))
	a := doc.GetKey("a")
	require.Equal(t, 6, a.Len())
	assert.Equal(t, TypeNull, a.Get(3).Type())
	assert.Equal(t, 1, a.Get(5).AsInt())
}

func TestSetPathObjectParentReportsSuccess(t *testing.T) {
	doc := patchTarget()
	require.NoError(t, SetPath(&doc, "/o/x", Int(2)))
	assert.Equal(t, 2, doc.Descendant("/o/x").AsInt())

	// upsert: a fresh key is appended
	require.NoError(t, SetPath(&doc, "/o/y", Int(3)))
	assert.Equal(t, 3, doc.Descendant("/o/y").AsInt())
}

func TestSetPathMissingParentLeavesTargetUnchanged(t *testing.T) {
	doc := patchTarget()
	want := doc.Clone()
	assert.ErrorIs(t, SetPath(&doc, "/b/1", Int(99)), ErrPathNotFound)
	assert.True(t, doc.Equal(want))
}

func TestSetPathFailures(t *testing.T) {
	doc := patchTarget()
	assert.ErrorIs(t, SetPath(&doc, "/a/x", Int(1)), ErrArrayIndex)
	assert.ErrorIs(t, SetPath(&doc, "/a/0/deep", Int(1)), ErrParentType)
}

func TestSetPathEmptyPathReplacesTarget(t *testing.T) {
	doc := patchTarget()
	require.NoError(t, SetPath(&doc, "", Int(5)))
	assert.Equal(t, 5, doc.AsInt())

	doc = patchTarget()
	require.NoError(t, SetPath(&doc, "/", String("root")))
	assert.Equal(t, "root", doc.AsString())
}

func TestInsertPathArrayShifts(t *testing.T) {
	doc := patchTarget()
	require.NoError(t, InsertPath(&doc, "/a/1", Int(15)))
	assert.True(t, doc.GetKey("a").Equal(Array(Int(10), Int(15), Int(20), Int(30))))

	require.NoError(t, InsertPath(&doc, "/a/0", Int(5)))
	assert.Equal(t, 5, doc.Descendant("/a/0").AsInt())
}

func TestInsertPathObjectUpserts(t *testing.T) {
	doc := patchTarget()
	require.NoError(t, InsertPath(&doc, "/o/x", Int(9)))
	assert.Equal(t, 9, doc.Descendant("/o/x").AsInt())
	assert.Equal(t, 1, doc.GetKey("o").Len())

	require.NoError(t, InsertPath(&doc, "/o/new", Bool(true)))
	assert.True(t, doc.Descendant("/o/new").AsBool())
}

func TestInsertPathFailures(t *testing.T) {
	doc := patchTarget()
	assert.ErrorIs(t, InsertPath(&doc, "/missing/x", Int(1)), ErrPathNotFound)
	assert.ErrorIs(t, InsertPath(&doc, "/a/notanindex", Int(1)), ErrArrayIndex)
	assert.ErrorIs(t, InsertPath(&doc, "/a/0/x", Int(1)), ErrParentType)
}

func TestInsertPathEmptyPathReplacesTarget(t *testing.T) {
	doc := patchTarget()
	require.NoError(t, InsertPath(&doc, "", Array(Int(1))))
	assert.Equal(t, TypeArray, doc.Type())
}

func TestRemovePath(t *testing.T) {
	doc := patchTarget()
	require.NoError(t, RemovePath(&doc, "/a/1"))
	assert.True(t, doc.GetKey("a").Equal(Array(Int(10), Int(30))))

	require.NoError(t, RemovePath(&doc, "/o/x"))
	assert.Equal(t, 0, doc.GetKey("o").Len())
}

func TestRemovePathRemovesAllDuplicates(t *testing.T) {
	doc := Read(`{"a":1,"a":2,"b":3}`)
	require.NoError(t, RemovePath(&doc, "/a"))
	assert.Equal(t, 1, doc.Len())
	assert.Nil(t, doc.Child("a"))
}

func TestRemovePathFailures(t *testing.T) {
	doc := patchTarget()
	assert.ErrorIs(t, RemovePath(&doc, ""), ErrEmptyPath)
	assert.ErrorIs(t, RemovePath(&doc, "/"), ErrEmptyPath)
	assert.ErrorIs(t, RemovePath(&doc, "/missing/x"), ErrPathNotFound)
	assert.ErrorIs(t, RemovePath(&doc, "/a/9"), ErrPathNotFound)
	assert.ErrorIs(t, RemovePath(&doc, "/a/x"), ErrPathNotFound)
}

func TestApplyPatch(t *testing.T) {
	tests := []struct {
		name  string
		patch string
		want  string
	}{
		{"set", `{"op":"set","path":"/a/1","value":99}`, `{"a":[10,99,30],"o":{"x":1}}`},
		{"insert", `{"op":"insert","path":"/a/0","value":5}`, `{"a":[5,10,20,30],"o":{"x":1}}`},
		{"remove", `{"op":"remove","path":"/a/2"}`, `{"a":[10,20],"o":{"x":1}}`},
		{"set object", `{"op":"set","path":"/o/x","value":{"deep":[1]}}`, `{"a":[10,20,30],"o":{"x":{"deep":[1]}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := patchTarget()
			require.NoError(t, ApplyPatch(&doc, Read(tt.patch)))
			assert.True(t, doc.Equal(Read(tt.want)), "got %s", doc.Write(Compact()))
		})
	}
}

func TestApplyPatchMalformedDescriptors(t *testing.T) {
	tests := []struct {
		name  string
		patch string
	}{
		{"missing op", `{"path":"/a/1","value":1}`},
		{"missing path", `{"op":"set","value":1}`},
		{"missing value", `{"op":"set","path":"/a/1"}`},
		{"unknown op", `{"op":"merge","path":"/a/1","value":1}`},
		{"not an object", `[1,2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := patchTarget()
			want := doc.Clone()
			assert.ErrorIs(t, ApplyPatch(&doc, Read(tt.patch)), ErrInvalidPatch)
			assert.True(t, doc.Equal(want))
		})
	}
}

func TestApplyPatchValueIsCopied(t *testing.T) {
	doc := patchTarget()
	patch := Read(`{"op":"set","path":"/o/x","value":[1,2]}`)
	require.NoError(t, ApplyPatch(&doc, patch))

	// mutating the descriptor afterwards must not leak into the target
	*patch.Key("value").At(0) = Int(99)
	assert.Equal(t, 1, doc.Descendant("/o/x/0").AsInt())
}

func TestRemoveWholeDocumentPieceByPiece(t *testing.T) {
	doc := patchTarget()
	require.NoError(t, RemovePath(&doc, "/a"))
	require.NoError(t, RemovePath(&doc, "/o"))
	assert.Equal(t, 0, doc.Len())
	assert.Equal(t, "{}", doc.Write(Compact()))
}
