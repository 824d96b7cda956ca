package nativeudf

import (
	"context"
	"errors"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/nativeudf/internal/typecodec"
	"os"
	"path/filepath"
	"testing"
)

type nativeSource struct {
	calls int
	err   error
}

func (s *nativeSource) Register(ctx context.Context, port Port) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	codec := typecodec.New()
	ret, _ := codec.EncodeType(arrow.Field{Name: "ret", Type: arrow.PrimitiveTypes.Int64, Nullable: true})
	args, _ := codec.EncodeStruct([]arrow.Field{{Name: "a", Type: arrow.PrimitiveTypes.Int64}})
	if err := port.RegisterScalar("myudf", ret, args); err != nil {
		return err
	}
	intermediate, _ := codec.EncodeStruct([]arrow.Field{{Name: "sum", Type: arrow.PrimitiveTypes.Int64, Nullable: true}})
	return port.RegisterAggregate("mysum", ret, args, intermediate)
}

type column struct {
	dataType arrow.DataType
}

func (c *column) DataType() arrow.DataType { return c.dataType }
func (c *column) Nullable() bool           { return true }

func newTestConfig(t *testing.T, settings map[string]interface{}) *Config {
	filesDir := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(filesDir, "lib.so"), []byte("lib"), 0o644))
	require.Nil(t, os.MkdirAll(filepath.Join(filesDir, "libs", "nested"), 0o755))
	require.Nil(t, os.WriteFile(filepath.Join(filesDir, "libs", "nested", "a.so"), []byte("a"), 0o644))
	settings[KeyFilesDir] = filesDir
	settings[KeyWorkspace] = t.TempDir()
	cfg, err := NewConfig(settings)
	require.Nil(t, err)
	return cfg
}

func TestSession_Init(t *testing.T) {
	cfg := newTestConfig(t, map[string]interface{}{
		KeyLibraryPaths: "lib.so,libs",
	})
	session := NewSession(cfg, Worker)
	require.Nil(t, session.Init(context.Background()))
	expect := []string{
		filepath.Join(cfg.FilesDir, "lib.so"),
		filepath.Join(cfg.FilesDir, "libs", "nested", "a.so"),
	}
	assert.Equal(t, expect, session.Libraries())
	assert.Equal(t, expect[0]+","+expect[1], cfg.Values[KeyLibraryPaths])
	assert.Equal(t, cfg.Values[KeyLibraryPaths], cfg.LibraryPaths)
	require.Nil(t, session.Init(context.Background()))
}

func TestSession_InitRejected(t *testing.T) {
	cfg := newTestConfig(t, map[string]interface{}{
		KeyLibraryPaths: "lib.so",
		KeyMaster:       "yarn",
		KeyDeployMode:   "client",
	})
	session := NewSession(cfg, Coordinator)
	err := session.Init(context.Background())
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, "lib.so", cfg.LibraryPaths)

	wd, err := os.Getwd()
	require.Nil(t, err)
	require.Nil(t, os.Chdir(cfg.FilesDir))
	defer func() { _ = os.Chdir(wd) }()
	worker := NewSession(cfg, Worker)
	require.Nil(t, worker.Init(context.Background()))
	assert.Equal(t, []string{"lib.so"}, worker.Libraries())
}

func TestSession_InitMissingLibrary(t *testing.T) {
	cfg := newTestConfig(t, map[string]interface{}{
		KeyLibraryPaths: "lib.so,absent.so",
	})
	session := NewSession(cfg, Worker)
	err := session.Init(context.Background())
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Empty(t, session.Libraries())
	assert.Equal(t, "lib.so,absent.so", cfg.LibraryPaths)
}

func TestSession_InitWithoutLibraries(t *testing.T) {
	cfg := newTestConfig(t, map[string]interface{}{})
	session := NewSession(cfg, Coordinator, WithSignatureSource(&nativeSource{}))
	require.Nil(t, session.Init(context.Background()))
	assert.Empty(t, session.Libraries())
	assert.False(t, session.Enabled())
	functions, err := session.Functions(context.Background())
	assert.Nil(t, err)
	assert.Empty(t, functions)
}

func TestSession_Functions(t *testing.T) {
	cfg := newTestConfig(t, map[string]interface{}{
		KeyDriverLibraryPaths: "lib.so",
	})
	source := &nativeSource{}
	session := NewSession(cfg, Coordinator, WithSignatureSource(source))
	require.Nil(t, session.Init(context.Background()))

	functions, err := session.Functions(context.Background())
	require.Nil(t, err)
	require.Len(t, functions, 2)
	assert.Equal(t, "myudf", functions[0].Name)
	assert.Equal(t, "mysum", functions[1].Name)
	_, err = session.Functions(context.Background())
	require.Nil(t, err)
	assert.Equal(t, 1, source.calls)

	call, err := functions[0].New([]Expr{&column{dataType: arrow.PrimitiveTypes.Int64}})
	require.Nil(t, err)
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Int64, call.DataType()))
	_, err = call.Eval(nil)
	assert.True(t, errors.Is(err, ErrUnsupportedDirectEvaluation))

	_, err = functions[0].New([]Expr{&column{dataType: arrow.BinaryTypes.String}})
	assert.True(t, errors.Is(err, ErrUnregisteredFunction))

	require.Nil(t, session.Close())
	_, err = functions[0].New([]Expr{&column{dataType: arrow.PrimitiveTypes.Int64}})
	assert.True(t, errors.Is(err, ErrUnregisteredFunction))
}

func TestSession_FunctionsSourceError(t *testing.T) {
	cfg := newTestConfig(t, map[string]interface{}{
		KeyLibraryPaths: "lib.so",
	})
	session := NewSession(cfg, Coordinator, WithSignatureSource(&nativeSource{err: errors.New("native backend unavailable")}))
	_, err := session.Functions(context.Background())
	assert.NotNil(t, err)
}
