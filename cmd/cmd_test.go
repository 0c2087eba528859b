package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/longkey1/mentorchat/internal/mentor/conversation"
	"github.com/longkey1/mentorchat/internal/mentor/reply"
	"github.com/longkey1/mentorchat/internal/mentor/session"
	"github.com/longkey1/mentorchat/internal/version"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local), false},
		{"2024-12", time.Date(2024, 12, 1, 0, 0, 0, 0, time.Local), false},
		{"2024", time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), false},
		{"15/03/2024", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestReadMessage(t *testing.T) {
	msg, err := readMessage([]string{"hello", "mentor"}, strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "hello mentor", msg)

	msg, err = readMessage([]string{"-"}, strings.NewReader("from stdin\n"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin\n", msg)
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, confirm(strings.NewReader("y\n"), &out, "Delete?"))
	assert.Equal(t, "Delete? [y/N]: ", out.String())
	assert.False(t, confirm(strings.NewReader("\n"), &out, "Delete?"))
	assert.False(t, confirm(strings.NewReader(""), &out, "Delete?"))
}

func TestSendOnce(t *testing.T) {
	ctrl := conversation.New(conversation.Options{
		Responder: reply.NewSimulated(10*time.Millisecond, reply.Template("echo: {{input}}")),
	})
	defer ctrl.Close()

	answer, err := sendOnce(context.Background(), ctrl, "  hi  ")
	require.NoError(t, err)
	assert.Equal(t, "echo: hi", answer)
	assert.Len(t, ctrl.Snapshot().Messages, 2)

	_, err = sendOnce(context.Background(), ctrl, "   ")
	assert.ErrorContains(t, err, "message is empty")
}

func TestSendOnceReportsReplyError(t *testing.T) {
	ctrl := conversation.New(conversation.Options{Responder: reply.NewSimulated(0, reply.Fixed(""))})
	defer ctrl.Close()

	_, err := sendOnce(context.Background(), ctrl, "hi")
	assert.ErrorContains(t, err, "empty reply")
}

func TestSendOnceHonoursContext(t *testing.T) {
	ctrl := conversation.New(conversation.Options{Responder: reply.NewSimulated(time.Hour, nil)})
	defer ctrl.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := sendOnce(ctx, ctrl, "hi")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))
}

func TestReadConfigFilesUserOverridesSystem(t *testing.T) {
	systemDir, userDir := t.TempDir(), t.TempDir()
	writeConfig(t, systemDir, "variant = \"mentor\"\ntheme = \"light\"\n")
	writeConfig(t, userDir, "variant = \"companion\"\n")

	v := viper.New()
	require.NoError(t, readConfigFiles(v, []string{systemDir}, userDir))

	assert.Equal(t, "companion", v.GetString("variant"))
	assert.Equal(t, "light", v.GetString("theme"), "system values not set by the user are kept")
	assert.Equal(t, filepath.Join(userDir, "config.toml"), v.ConfigFileUsed())
}

func TestReadConfigFilesSingleSource(t *testing.T) {
	t.Run("system only", func(t *testing.T) {
		systemDir := t.TempDir()
		writeConfig(t, systemDir, "variant = \"mentor\"\n")

		v := viper.New()
		require.NoError(t, readConfigFiles(v, []string{systemDir}, t.TempDir()))
		assert.Equal(t, "mentor", v.GetString("variant"))
	})

	t.Run("user only", func(t *testing.T) {
		userDir := t.TempDir()
		writeConfig(t, userDir, "variant = \"companion\"\n")

		v := viper.New()
		require.NoError(t, readConfigFiles(v, []string{t.TempDir()}, userDir))
		assert.Equal(t, "companion", v.GetString("variant"))
	})

	t.Run("none", func(t *testing.T) {
		v := viper.New()
		require.NoError(t, readConfigFiles(v, []string{t.TempDir()}, t.TempDir()))
		assert.Equal(t, "", v.GetString("variant"))
	})
}

func TestReadConfigFilesInvalidUserFile(t *testing.T) {
	userDir := t.TempDir()
	writeConfig(t, userDir, "variant = \n")

	err := readConfigFiles(viper.New(), []string{t.TempDir()}, userDir)
	assert.ErrorContains(t, err, "merging user config")
}

// deleteFailingStore fails every Delete after the first allowed ones.
type deleteFailingStore struct {
	session.Store
	allowed int
}

func (d *deleteFailingStore) Delete(ctx context.Context, id string) error {
	if d.allowed == 0 {
		return errors.New("disk is read-only")
	}
	d.allowed--
	return d.Store.Delete(ctx, id)
}

func TestPruneSessions(t *testing.T) {
	ctx := context.Background()
	old := time.Now().AddDate(0, 0, -60)
	seed := func(t *testing.T, store session.Store, n int) {
		t.Helper()
		for i := 0; i < n; i++ {
			sess := session.NewSession("mentor")
			sess.UpdatedAt = old.Add(time.Duration(i) * time.Minute)
			require.NoError(t, store.Save(ctx, sess))
		}
	}

	t.Run("success", func(t *testing.T) {
		store := session.NewFileStore(t.TempDir())
		seed(t, store, 2)

		var out bytes.Buffer
		require.NoError(t, pruneSessions(ctx, &out, store, time.Now()))
		assert.Equal(t, "Successfully deleted 2 sessions.\n", out.String())
	})

	t.Run("failure is returned", func(t *testing.T) {
		files := session.NewFileStore(t.TempDir())
		seed(t, files, 3)
		store := &deleteFailingStore{Store: files, allowed: 1}

		var out bytes.Buffer
		err := pruneSessions(ctx, &out, store, time.Now())
		require.Error(t, err)
		assert.ErrorContains(t, err, "pruning sessions")
		assert.ErrorContains(t, err, "disk is read-only")
		assert.Equal(t, "Deleted 1 sessions before the failure.\n", out.String())

		remaining, err := files.List(ctx)
		require.NoError(t, err)
		assert.Len(t, remaining, 2)
	})
}

func TestPrintVersion(t *testing.T) {
	var out bytes.Buffer
	printVersion(&out, true)
	assert.Equal(t, version.Short()+"\n", out.String())

	out.Reset()
	printVersion(&out, false)
	assert.True(t, strings.HasPrefix(out.String(), "mentorchat "+version.Short()+"\n"))
	assert.Contains(t, out.String(), "commit: ")
}
