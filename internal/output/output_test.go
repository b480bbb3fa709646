package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/summd/internal/config"
)

type fakeClipboard struct {
	copied []string
}

func (f *fakeClipboard) Copy(text string) error {
	f.copied = append(f.copied, text)
	return nil
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"print", ModePrint, false},
		{"", ModePrint, false},
		{"copy", ModeCopy, false},
		{"exec", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputWithMode(t *testing.T) {
	var buf bytes.Buffer
	clip := &fakeClipboard{}
	sink := NewSink().WithWriter(&buf).WithClipboard(clip)

	require.NoError(t, sink.OutputWithMode("# Summary\n\n", ModePrint))
	assert.Equal(t, "# Summary\n", buf.String())

	require.NoError(t, sink.OutputWithMode("copied", ModeCopy))
	assert.Equal(t, []string{"copied"}, clip.copied)
}

func TestOutputUsesConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	var buf bytes.Buffer
	clip := &fakeClipboard{}
	sink := NewSink().WithWriter(&buf).WithClipboard(clip)

	config.SetOutput("copy")
	require.NoError(t, sink.Output("text"))
	assert.Equal(t, []string{"text"}, clip.copied)
	assert.Empty(t, buf.String())

	config.SetOutput("bogus")
	assert.Error(t, sink.Output("text"))
}

func TestCopyWithoutClipboardTool(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	var buf bytes.Buffer
	err := NewSink().WithWriter(&buf).WithoutPrintFallback().OutputWithMode("summary", ModeCopy)
	assert.True(t, errors.Is(err, ErrNoClipboard))
	assert.Empty(t, buf.String())

	fallback := &bytes.Buffer{}
	sink := &Sink{out: &buf, clipboard: &systemClipboard{fallback: fallback}}
	require.NoError(t, sink.OutputWithMode("summary", ModeCopy))
	assert.Equal(t, "summary\n", fallback.String())
}
