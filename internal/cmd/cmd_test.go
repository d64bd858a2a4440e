package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	cli := &CLI{}
	parser, err := newParser(cli, kong.Exit(func(int) { t.Fatal("parser exited") }))
	if err != nil {
		t.Fatalf("failed to build parser: %v", err)
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%v) failed: %v", args, err)
	}
	return cli, ctx
}

func TestParseCombine(t *testing.T) {
	cli, ctx := parse(t, "combine", "job.yaml", "--root", "House", "-o", "Combined/Houses", "--index-format", "16", "--dry-run", "--secondary-uvs")
	if !strings.HasPrefix(ctx.Command(), "combine") {
		t.Errorf("command = %q", ctx.Command())
	}
	c := cli.Combine
	if !strings.HasSuffix(c.Config, "job.yaml") || !c.DryRun {
		t.Errorf("unexpected combine flags: %+v", c)
	}

	o := c.Overrides()
	if o.Root != "House" || o.OutputDir != "Combined/Houses" || o.IndexFormat != "16" {
		t.Errorf("unexpected overrides: %+v", o)
	}
	if o.SecondaryUVs == nil || !*o.SecondaryUVs {
		t.Error("expected secondary UVs override to be true")
	}
}

func TestSecondaryUVOverride(t *testing.T) {
	if o := (JobFlags{}).Overrides(); o.SecondaryUVs != nil {
		t.Error("unset flags should not override the job file")
	}
	o := (JobFlags{SecondaryUVs: true, NoSecondaryUVs: true}).Overrides()
	if o.SecondaryUVs == nil || *o.SecondaryUVs {
		t.Error("--no-secondary-uvs should win")
	}
}

func TestParseInspect(t *testing.T) {
	cli, ctx := parse(t, "inspect", "../../example/street.gltf", "--dump")
	if !strings.HasPrefix(ctx.Command(), "inspect") {
		t.Errorf("command = %q", ctx.Command())
	}
	if !cli.Inspect.Dump {
		t.Error("expected --dump")
	}
}

func TestCombineHelp(t *testing.T) {
	help := renderCombineHelp()
	for _, want := range []string{"meshcombine combine", "--dry-run", "output_dir", "index_format"} {
		if !strings.Contains(help, want) {
			t.Errorf("help text missing %q", want)
		}
	}
}

func TestCompletion(t *testing.T) {
	for shell, want := range map[string]string{
		"bash": "complete -F _meshcombine_completions meshcombine",
		"zsh":  "#compdef meshcombine",
		"fish": "complete -c meshcombine",
	} {
		var buf bytes.Buffer
		if err := writeCompletion(&buf, shell); err != nil {
			t.Errorf("%s: %v", shell, err)
			continue
		}
		if !strings.Contains(buf.String(), want) {
			t.Errorf("%s completion missing %q", shell, want)
		}
	}

	if err := writeCompletion(&bytes.Buffer{}, "powershell"); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}
