package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/jsonctx/internal/errors"
	"github.com/toyz/jsonctx/internal/generator"
	"github.com/toyz/jsonctx/internal/output"
	"github.com/toyz/jsonctx/internal/parser"
	"github.com/toyz/jsonctx/internal/utils"
)

const userServiceSource = `
using System.Threading.Tasks;

namespace Demo
{
    public class UserService
    {
        public Task<UserDto> GetUser(int id) { return null; }
        public void Save(UserDto user, CancellationToken token) { }
    }
}`

const ordersSource = `
namespace Demo
{
    public interface IOrders
    {
        List<OrderDto> Find(string name);
        Task<UserDto> Owner(OrderDto order);
    }
}`

const expectedDemoOutput = "[JsonSerializable(typeof(CancellationToken))]\n" +
	"[JsonSerializable(typeof(List<OrderDto>))]\n" +
	"[JsonSerializable(typeof(OrderDto))]\n" +
	"[JsonSerializable(typeof(UserDto))]"

type stubClipboard struct {
	err  error
	text string
}

func (c *stubClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func newTestGenerator(t *testing.T, cfg *Config) (*Generator, *bytes.Buffer) {
	t.Helper()
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.Output.LineEnding = LineEndingLF

	var diag bytes.Buffer
	gen, err := NewGeneratorWithDiagnostics(cfg, utils.NewDiagnosticSystemWithWriter(utils.DiagnosticInfo, &diag))
	require.NoError(t, err)
	return gen, &diag
}

func TestGenerator_RunAcrossFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"UserService.cs":    userServiceSource,
		"Orders/IOrders.cs": ordersSource,
		"bin/Stale.cs":      "public class Stale { public StaleDto Get() { return null; } }",
		"Orders/readme.txt": "public class Ignored { public IgnoredDto Get() { return null; } }",
	})

	gen, diag := newTestGenerator(t, nil)
	result, err := gen.Run(context.Background(), []string{root})
	require.NoError(t, err)

	assert.Equal(t, []string{"CancellationToken", "List<OrderDto>", "OrderDto", "UserDto"}, result.Names)
	assert.Equal(t, expectedDemoOutput, result.Output)
	assert.False(t, result.Empty())
	assert.Empty(t, diag.String())

	summary := result.Summary
	assert.Equal(t, 2, summary.FilesScanned)
	assert.Equal(t, 0, summary.FilesMissing)
	assert.Equal(t, 2, summary.TypesFound)
	assert.Equal(t, 4, summary.MethodsFound)
	assert.Equal(t, 4, summary.Declarations)
	require.Len(t, summary.Files, 2)
	assert.Equal(t, filepath.Join(root, "Orders", "IOrders.cs"), summary.Files[0].Path)
	assert.Equal(t, filepath.Join(root, "UserService.cs"), summary.Files[1].Path)
}

func TestGenerator_RunSkipsMissingPaths(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"UserService.cs": userServiceSource})
	missing := filepath.Join(root, "Nope.cs")

	gen, diag := newTestGenerator(t, nil)
	result, err := gen.Run(context.Background(), []string{missing, filepath.Join(root, "UserService.cs")})
	require.NoError(t, err)

	assert.Equal(t, []string{"CancellationToken", "UserDto"}, result.Names)
	assert.Equal(t, 1, result.Summary.FilesMissing)
	assert.Contains(t, diag.String(), "[WARN] Skipping "+missing)
}

func TestGenerator_RunWithOnlyMissingPaths(t *testing.T) {
	gen, _ := newTestGenerator(t, nil)

	result, err := gen.Run(context.Background(), []string{filepath.Join(t.TempDir(), "gone.cs")})
	require.NoError(t, err)
	assert.True(t, result.Empty())
	assert.Empty(t, result.Output)
}

func TestGenerator_GenerateFilesSkipsVanishedFile(t *testing.T) {
	gen, diag := newTestGenerator(t, nil)
	gone := filepath.Join(t.TempDir(), "Gone.cs")

	result, err := gen.GenerateFiles(context.Background(), []string{gone})
	require.NoError(t, err)
	assert.True(t, result.Empty())
	assert.Equal(t, 1, result.Summary.FilesMissing)
	assert.Contains(t, diag.String(), "file no longer exists")
}

func TestGenerator_GenerateFilesUnreadable(t *testing.T) {
	gen, _ := newTestGenerator(t, nil)
	dir := t.TempDir()

	_, err := gen.GenerateFiles(context.Background(), []string{dir})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.FileSystemErrorCode))
	assert.Contains(t, err.Error(), "failed to read")
}

func TestGenerator_GenerateSources(t *testing.T) {
	gen, _ := newTestGenerator(t, nil)

	result, err := gen.GenerateSources(context.Background(), []Source{
		{Name: "UserService.cs", Content: userServiceSource},
		{Name: "IOrders.cs", Content: ordersSource},
		{Name: "Empty.cs", Content: ""},
	})
	require.NoError(t, err)

	assert.Equal(t, expectedDemoOutput, result.Output)
	assert.Equal(t, 3, result.Summary.FilesScanned)
	assert.Equal(t, "UserService.cs", result.Summary.Files[0].Path)
}

func TestGenerator_MatchesCoreRendering(t *testing.T) {
	gen, _ := newTestGenerator(t, nil)
	src := "public class C { public Task<Task<Task<Deep>>> A() { return null; } public void B(ValueTask<Task<Dto>> v) { } }"

	result, err := gen.GenerateSources(context.Background(), []Source{{Name: "C.cs", Content: src}})
	require.NoError(t, err)

	core, ok := generator.RenderWith(generator.CollectTypeReferences(parser.ParseTypes(src)), generator.DefaultRules(), "\n")
	require.True(t, ok)
	assert.Equal(t, core, result.Output)
	assert.Equal(t, "[JsonSerializable(typeof(Dto))]\n[JsonSerializable(typeof(Task<Deep>))]", result.Output)
	assert.Equal(t, []string{"Dto", "Task<Deep>"}, result.Names)
}

func TestGenerator_ConfiguredExclusions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Types.Exclude = []string{"CancellationToken"}
	cfg.Types.ExcludeSuffixes = []string{"Dto"}
	gen, _ := newTestGenerator(t, cfg)

	result, err := gen.GenerateSources(context.Background(), []Source{
		{Name: "UserService.cs", Content: userServiceSource},
		{Name: "IOrders.cs", Content: ordersSource},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"List<OrderDto>"}, result.Names)
}

func TestGenerator_CRLFLineEnding(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.LineEnding = LineEndingCRLF
	gen, err := NewGeneratorWithDiagnostics(cfg, utils.NewQuietDiagnostics())
	require.NoError(t, err)

	result, err := gen.GenerateSources(context.Background(), []Source{{Name: "a.cs", Content: userServiceSource}})
	require.NoError(t, err)
	assert.Equal(t, "[JsonSerializable(typeof(CancellationToken))]\r\n[JsonSerializable(typeof(UserDto))]", result.Output)
}

func TestGenerator_CanceledContext(t *testing.T) {
	gen, _ := newTestGenerator(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.GenerateSources(ctx, []Source{{Name: "a.cs", Content: userServiceSource}})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, context.Canceled))
}

func TestGenerator_DeliverEmptyResult(t *testing.T) {
	gen, _ := newTestGenerator(t, nil)
	cb := &stubClipboard{}
	var stdout bytes.Buffer

	delivery, err := gen.Deliver(&Result{}, output.NewDelivererWith(cb, &stdout), gen.OutputOptions())
	require.NoError(t, err)

	assert.Equal(t, output.TargetStdout, delivery.Target)
	assert.Equal(t, NoTypesMessage+"\n", stdout.String())
	assert.Empty(t, cb.text)
}

func TestGenerator_DeliverToClipboard(t *testing.T) {
	gen, diag := newTestGenerator(t, nil)
	cb := &stubClipboard{}
	var stdout bytes.Buffer

	result, err := gen.GenerateSources(context.Background(), []Source{{Name: "a.cs", Content: userServiceSource}})
	require.NoError(t, err)

	delivery, err := gen.Deliver(result, output.NewDelivererWith(cb, &stdout), gen.OutputOptions())
	require.NoError(t, err)

	assert.Equal(t, output.TargetClipboard, delivery.Target)
	assert.Equal(t, result.Output, cb.text)
	assert.Empty(t, stdout.String())
	assert.Empty(t, diag.String())
}

func TestGenerator_DeliverClipboardFallback(t *testing.T) {
	gen, diag := newTestGenerator(t, nil)
	cb := &stubClipboard{err: stderrors.New("no display")}
	var stdout bytes.Buffer

	result, err := gen.GenerateSources(context.Background(), []Source{{Name: "a.cs", Content: userServiceSource}})
	require.NoError(t, err)

	delivery, err := gen.Deliver(result, output.NewDelivererWith(cb, &stdout), gen.OutputOptions())
	require.NoError(t, err)

	assert.True(t, delivery.FellBack())
	assert.Equal(t, result.Output+"\n", stdout.String())
	assert.Equal(t, output.ClipboardFallbackNotice+"\n", diag.String())
}

func TestGenerator_DeliverToFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.File = filepath.Join(t.TempDir(), "out", "JsonContext.g.txt")
	gen, _ := newTestGenerator(t, cfg)
	var stdout bytes.Buffer

	result, err := gen.GenerateSources(context.Background(), []Source{{Name: "a.cs", Content: userServiceSource}})
	require.NoError(t, err)

	delivery, err := gen.Deliver(result, output.NewDelivererWith(&stubClipboard{}, &stdout), gen.OutputOptions())
	require.NoError(t, err)
	assert.Equal(t, output.TargetFile, delivery.Target)

	data, err := os.ReadFile(cfg.Output.File)
	require.NoError(t, err)
	assert.Equal(t, result.Output+"\n", string(data))
	assert.Empty(t, stdout.String())
}
