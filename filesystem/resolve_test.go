package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTree creates /a/b/f (file), /a/c and /g (file)
func buildTree(t *testing.T) *FileSystem {
	t.Helper()
	fs := NewFS()
	b, err := fs.MakeDirs("/a/b")
	require.NoError(t, err)
	_, err = fs.MakeDirs("/a/c")
	require.NoError(t, err)
	f, err := fs.CreateFile(b, "f")
	require.NoError(t, err)
	require.NoError(t, f.Write([]string{"hello"}))
	createTestFile(t, fs, "g")
	return fs
}

func mustResolve(t *testing.T, fs *FileSystem, p string, start *Inode) *Inode {
	t.Helper()
	n, err := fs.Resolve(p, start)
	require.NoError(t, err, "resolve %q", p)
	return n
}

func TestResolve_AbsoluteIndependentOfStart(t *testing.T) {
	t.Parallel()

	fs := buildTree(t)
	starts := []*Inode{
		fs.Root(),
		mustResolve(t, fs, "/a", fs.Root()),
		mustResolve(t, fs, "/a/b", fs.Root()),
		mustResolve(t, fs, "/a/b/f", fs.Root()),
		mustResolve(t, fs, "/g", fs.Root()),
		nil,
	}
	paths := []string{"/", "/a", "/a/b", "/a/b/f", "/a/c/..", "//a///b/", "/..", "/a/./b/../c"}

	for _, p := range paths {
		want := mustResolve(t, fs, p, fs.Root())
		for _, start := range starts {
			got, err := fs.Resolve(p, start)
			require.NoError(t, err, "resolve %q", p)
			assert.Same(t, want, got, "resolve %q", p)
		}
	}
}

func TestResolve_RootPath(t *testing.T) {
	t.Parallel()

	fs := buildTree(t)
	b := mustResolve(t, fs, "/a/b", fs.Root())
	assert.Same(t, fs.Root(), mustResolve(t, fs, "/", b))
}

func TestResolve_DotIsIdentity(t *testing.T) {
	t.Parallel()

	fs := buildTree(t)
	for _, p := range []string{"/", "/a", "/a/b", "/a/c"} {
		n := mustResolve(t, fs, p, fs.Root())
		assert.Same(t, n, mustResolve(t, fs, ".", n), "resolve . from %s", p)
		assert.Same(t, n, mustResolve(t, fs, "", n), "empty path from %s", p)
	}
}

func TestResolve_DotDot(t *testing.T) {
	t.Parallel()

	fs := buildTree(t)
	root := fs.Root()
	a := mustResolve(t, fs, "/a", root)
	b := mustResolve(t, fs, "/a/b", root)

	assert.Same(t, root, mustResolve(t, fs, "..", root), "root is its own parent")
	assert.Same(t, root, mustResolve(t, fs, "../../..", root))
	assert.Same(t, a, mustResolve(t, fs, "..", b))
	assert.Same(t, root, mustResolve(t, fs, "../..", b))
	assert.Same(t, mustResolve(t, fs, "/a/c", root), mustResolve(t, fs, "../c", b))
}

func TestResolve_Relative(t *testing.T) {
	t.Parallel()

	fs := buildTree(t)
	a := mustResolve(t, fs, "/a", fs.Root())

	f := mustResolve(t, fs, "b/f", a)
	assert.Equal(t, "/a/b/f", f.Path())
	assert.False(t, f.IsDir(), "resolve returns files as well as directories")
}

func TestResolve_NotFound(t *testing.T) {
	t.Parallel()

	fs := buildTree(t)
	tests := []string{"nope", "/nope", "/a/nope", "/a/nope/deeper", "a/b/x"}
	for _, p := range tests {
		t.Run(p, func(t *testing.T) {
			_, err := fs.Resolve(p, fs.Root())
			assert.ErrorIs(t, err, ErrNotFound)
			assert.Contains(t, err.Error(), p)
		})
	}
}

func TestResolve_ThroughFile(t *testing.T) {
	t.Parallel()

	fs := buildTree(t)
	tests := []string{"/g/x", "/a/b/f/x", "/a/b/f/.", "/a/b/f/..", "g/"}
	for _, p := range tests {
		t.Run(p, func(t *testing.T) {
			_, err := fs.Resolve(p, fs.Root())
			if p == "g/" {
				// trailing slash adds no component
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrNotADirectory)
		})
	}
}

func TestResolve_InvalidStart(t *testing.T) {
	t.Parallel()

	fs := buildTree(t)
	a := mustResolve(t, fs, "/a", fs.Root())
	c := mustResolve(t, fs, "/a/c", fs.Root())
	require.NoError(t, fs.Unlink(a, "c"))

	_, err := fs.Resolve("x", nil)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = fs.Resolve("", nil)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = fs.Resolve(".", c)
	assert.ErrorIs(t, err, ErrNotFound, "detached start must not resolve")
}

func TestResolveDirAndFile(t *testing.T) {
	t.Parallel()

	fs := buildTree(t)

	_, err := fs.ResolveDir("/a/b/f", fs.Root())
	assert.ErrorIs(t, err, ErrNotADirectory)
	d, err := fs.ResolveDir("/a/b", fs.Root())
	require.NoError(t, err)
	assert.True(t, d.IsDir())

	_, err = fs.ResolveFile("/a/b", fs.Root())
	assert.ErrorIs(t, err, ErrNotAFile)
	f, err := fs.ResolveFile("/a/b/f", fs.Root())
	require.NoError(t, err)
	assert.False(t, f.IsDir())

	_, err = fs.ResolveFile("/missing", fs.Root())
	assert.ErrorIs(t, err, ErrNotFound)
}
