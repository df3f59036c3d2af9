package cli

import (
	"bytes"
	"context"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazrean/hashfiles/internal/domain"
)

const (
	sha3HelloWorld = "644bcc7e564373040999aac89e7622f3ca71fba1d972fd94a31c3bfbf24e3938"
	md5Test        = "098f6bcd4621d373cade4e832627b4f6"
	sha1Test       = "a94a8fe5ccb19ba61c4c0873d391e987982fbbd3"
	crc32Test      = "3632233996"
)

// chdirWithFiles switches to a fresh directory containing files.
func chdirWithFiles(t *testing.T, files map[string]string) {
	t.Helper()
	t.Chdir(t.TempDir())
	for name, content := range files {
		require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
	}
}

type hashRun struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
	err    error
}

func runHash(t *testing.T, cmd *HashCmd, stdin string, configPath string) *hashRun {
	t.Helper()

	r := &hashRun{}
	env := hashEnv{
		stdin:  strings.NewReader(stdin),
		stdout: &r.stdout,
		stderr: &r.stderr,
	}
	r.err = cmd.run(context.Background(), env, configPath, false)
	return r
}

func lines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestHashCmd_Run(t *testing.T) {
	files := map[string]string{
		"hello.txt": "hello world",
		"test.txt":  "test",
		"other.log": "test",
	}

	tests := []struct {
		name  string
		cmd   HashCmd
		stdin string
		want  []string
	}{
		{
			name: "default algorithm and encoding",
			cmd:  HashCmd{Paths: []string{"hello.txt"}},
			want: []string{sha3HelloWorld + " hello.txt"},
		},
		{
			name: "MD5 without filenames",
			cmd:  HashCmd{Settings: settingsFlags{Algorithm: "md5", ExcludeFilenames: true}, Paths: []string{"test.txt"}},
			want: []string{md5Test},
		},
		{
			name: "CRC32 defaults to U32",
			cmd:  HashCmd{Settings: settingsFlags{Algorithm: "crc-32"}, Paths: []string{"test.txt"}},
			want: []string{crc32Test + " test.txt"},
		},
		{
			name: "sequential glob keeps walk order",
			cmd:  HashCmd{Settings: settingsFlags{Algorithm: "sha1", SingleThread: true}, Paths: []string{"*.txt"}},
			want: []string{
				"2aae6c35c94fcfb415dbe95f408b9ce91ee846ed hello.txt",
				sha1Test + " test.txt",
			},
		},
		{
			name: "limit truncates the file list",
			cmd:  HashCmd{Settings: settingsFlags{Algorithm: "md5", SingleThread: true, Limit: 1}, Paths: []string{"test.txt", "other.log"}},
			want: []string{md5Test + " test.txt"},
		},
		{
			name:  "paths from stdin",
			cmd:   HashCmd{Settings: settingsFlags{Algorithm: "md5", SingleThread: true}},
			stdin: "test.txt\nmissing.txt\nother.log\n",
			want:  []string{md5Test + " test.txt", md5Test + " other.log"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirWithFiles(t, files)

			r := runHash(t, &tt.cmd, tt.stdin, "")
			require.NoError(t, r.err, r.stderr.String())
			assert.Equal(t, tt.want, lines(r.stdout.String()))
		})
	}
}

func TestHashCmd_Parallel(t *testing.T) {
	files := map[string]string{}
	for _, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt", "e.txt"} {
		files[name] = "test"
	}
	chdirWithFiles(t, files)

	cmd := HashCmd{Settings: settingsFlags{Algorithm: "md5", Jobs: 3}, Paths: []string{"*.txt"}}
	r := runHash(t, &cmd, "", "")
	require.NoError(t, r.err)

	got := lines(r.stdout.String())
	sort.Strings(got)
	assert.Equal(t, []string{
		md5Test + " a.txt",
		md5Test + " b.txt",
		md5Test + " c.txt",
		md5Test + " d.txt",
		md5Test + " e.txt",
	}, got)
}

func TestHashCmd_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		cmd     HashCmd
	}{
		{
			name:    "CRC32 with hex",
			cmd:     HashCmd{Settings: settingsFlags{Algorithm: "CRC32", Encoding: "hex"}, Paths: []string{"test.txt"}},
			wantErr: domain.ErrEncodingPairing,
		},
		{
			name:    "U32 with SHA3",
			cmd:     HashCmd{Settings: settingsFlags{Encoding: "u32"}, Paths: []string{"test.txt"}},
			wantErr: domain.ErrEncodingPairing,
		},
		{
			name:    "unknown algorithm",
			cmd:     HashCmd{Settings: settingsFlags{Algorithm: "sha4"}, Paths: []string{"test.txt"}},
			wantErr: domain.ErrInvalidAlgorithm,
		},
		{
			name:    "negative limit",
			cmd:     HashCmd{Settings: settingsFlags{Limit: -1}, Paths: []string{"test.txt"}},
			wantErr: domain.ErrInvalidLimit,
		},
		{
			name:    "missing literal path",
			cmd:     HashCmd{Paths: []string{"test.txt", "missing.txt"}},
			wantErr: domain.ErrFileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirWithFiles(t, map[string]string{"test.txt": "test"})

			r := runHash(t, &tt.cmd, "", "")
			require.ErrorIs(t, r.err, tt.wantErr)
			assert.ErrorIs(t, r.err, domain.ErrInvalidConfig)
			assert.Empty(t, r.stdout.String(), "no file is hashed when configuration fails")
			assert.Contains(t, r.stderr.String(), "Error:")
		})
	}
}

func TestHashCmd_DefaultsFile(t *testing.T) {
	tests := []struct {
		name     string
		defaults string
		cmd      HashCmd
		want     []string
	}{
		{
			name:     "defaults file applies",
			defaults: "algorithm = \"md5\"\nexclude_filenames = true\n",
			cmd:      HashCmd{Paths: []string{"test.txt"}},
			want:     []string{md5Test},
		},
		{
			name:     "flags override the defaults file",
			defaults: "algorithm = \"md5\"\n",
			cmd:      HashCmd{Settings: settingsFlags{Algorithm: "sha1"}, Paths: []string{"test.txt"}},
			want:     []string{sha1Test + " test.txt"},
		},
		{
			name:     "stored U32 encoding is dropped for a non-CRC32 algorithm",
			defaults: "algorithm = \"crc32\"\nencoding = \"u32\"\n",
			cmd:      HashCmd{Settings: settingsFlags{Algorithm: "md5"}, Paths: []string{"test.txt"}},
			want:     []string{md5Test + " test.txt"},
		},
		{
			name:     "stored encoding is kept when it pairs",
			defaults: "encoding = \"base64\"\n",
			cmd:      HashCmd{Settings: settingsFlags{Algorithm: "sha3", ExcludeFilenames: true}, Paths: []string{"test.txt"}},
			want:     []string{"NvAoWAuwLMgnKpoCD0IA40bidq5mTkXugHRVdOL1q4A="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirWithFiles(t, map[string]string{"test.txt": "test", defaultConfigPath: tt.defaults})

			r := runHash(t, &tt.cmd, "", "")
			require.NoError(t, r.err, r.stderr.String())
			assert.Equal(t, tt.want, lines(r.stdout.String()))
		})
	}
}

func TestHashCmd_ExplicitConfigMissing(t *testing.T) {
	chdirWithFiles(t, map[string]string{"test.txt": "test"})

	cmd := HashCmd{Paths: []string{"test.txt"}}
	r := runHash(t, &cmd, "", "custom.toml")

	assert.ErrorIs(t, r.err, domain.ErrConfigNotFound)
	assert.ErrorIs(t, r.err, domain.ErrInvalidConfig)
}

func TestHashCmd_ExplicitDefaultPathMissing(t *testing.T) {
	chdirWithFiles(t, map[string]string{"test.txt": "test"})

	cmd := HashCmd{Paths: []string{"test.txt"}}
	r := runHash(t, &cmd, "", defaultConfigPath)

	assert.ErrorIs(t, r.err, domain.ErrConfigNotFound)
	assert.Empty(t, r.stdout.String())
}

func TestHashCmd_InvalidDefaultsFile(t *testing.T) {
	chdirWithFiles(t, map[string]string{"test.txt": "test", defaultConfigPath: "algorithm = ["})

	cmd := HashCmd{Paths: []string{"test.txt"}}
	r := runHash(t, &cmd, "", "")

	assert.ErrorIs(t, r.err, domain.ErrInvalidConfig)
	assert.Empty(t, r.stdout.String())
}

func TestHashCmd_Summary(t *testing.T) {
	chdirWithFiles(t, map[string]string{"a.txt": "a", "b.txt": "b"})

	cmd := HashCmd{Settings: settingsFlags{Algorithm: "md5", SingleThread: true, Summary: true}, Paths: []string{"*.txt"}}
	first := runHash(t, &cmd, "", "")
	require.NoError(t, first.err)

	out := lines(first.stdout.String())
	require.Len(t, out, 3)
	summary := out[2]
	assert.True(t, strings.HasPrefix(summary, "h1:"), summary)
	assert.True(t, strings.HasSuffix(summary, " (2 files)"), summary)

	// The summary does not depend on the hashing order.
	parallel := HashCmd{Settings: settingsFlags{Algorithm: "md5", Jobs: 2, Summary: true}, Paths: []string{"*.txt"}}
	second := runHash(t, &parallel, "", "")
	require.NoError(t, second.err)
	assert.Equal(t, summary, lines(second.stdout.String())[2])
}

func TestHashCmd_NoFiles(t *testing.T) {
	chdirWithFiles(t, map[string]string{"a.txt": "a"})

	cmd := HashCmd{Paths: []string{"*.none"}}
	r := runHash(t, &cmd, "", "")

	require.NoError(t, r.err)
	assert.Empty(t, r.stdout.String())
}

func TestHashCmd_DebugGoesToStderr(t *testing.T) {
	chdirWithFiles(t, map[string]string{"test.txt": "test"})

	var stdout, stderr bytes.Buffer
	env := hashEnv{stdin: strings.NewReader(""), stdout: &stdout, stderr: &stderr}
	cmd := HashCmd{Settings: settingsFlags{Algorithm: "md5"}, Paths: []string{"test.txt"}}

	require.NoError(t, cmd.run(context.Background(), env, "", true))
	assert.Equal(t, md5Test+" test.txt\n", stdout.String())
	assert.Contains(t, stderr.String(), "[DEBUG] Algorithm: MD5, encoding: Hex, files: 1")
}

func TestHashCmd_Options(t *testing.T) {
	defaults := &domain.Config{Algorithm: "md5", Encoding: "base32", Jobs: 2, Limit: 5, NoProgress: true}

	t.Run("defaults only", func(t *testing.T) {
		cmd := HashCmd{Paths: []string{"x"}}
		opts := cmd.options(defaults, true)

		assert.Equal(t, domain.RunOptions{
			Algorithm:  "md5",
			Encoding:   "base32",
			Workers:    2,
			Limit:      5,
			NoProgress: true,
			Debug:      true,
			Paths:      []string{"x"},
		}, opts)
	})

	t.Run("flags win", func(t *testing.T) {
		cmd := HashCmd{Settings: settingsFlags{Algorithm: "sha1", Encoding: "hex", Jobs: 8, Limit: 1, Summary: true}}
		opts := cmd.options(defaults, false)

		assert.Equal(t, "sha1", opts.Algorithm)
		assert.Equal(t, "hex", opts.Encoding)
		assert.Equal(t, 8, opts.Workers)
		assert.Equal(t, 1, opts.Limit)
		assert.True(t, opts.Summary)
		assert.True(t, opts.NoProgress)
	})

	t.Run("CRC32 flag drops stored encoding", func(t *testing.T) {
		cmd := HashCmd{Settings: settingsFlags{Algorithm: "crc32"}}
		opts := cmd.options(defaults, false)

		assert.Equal(t, "crc32", opts.Algorithm)
		assert.Empty(t, opts.Encoding)
	})
}
