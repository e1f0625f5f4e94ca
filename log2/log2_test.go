package log2

import (
	"bytes"
	"fmt"
	"log"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog2(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		fun  func(t testing.TB, l *Log) string
	}{
		{"caller/debug", func(t testing.TB, l *Log) string {
			l.SetFlags(log.Lshortfile)
			l.Debugf("layer=%d", 2)
			return formatCallerShort(1) + "debug: layer=2\n"
		}},
		{"caller/info", func(t testing.TB, l *Log) string {
			l.SetFlags(log.Lshortfile)
			l.Infof("display state=%s", "ok")
			return formatCallerShort(1) + "display state=ok\n"
		}},
		{"caller/error", func(t testing.TB, l *Log) string {
			l.SetFlags(log.Lshortfile)
			l.Errorf("problem")
			return formatCallerShort(1) + "error: problem\n"
		}},
		{"error-func/error", func(t testing.TB, l *Log) string {
			ech := make(chan error, 1)
			l.SetErrorFunc(func(e error) { ech <- e })
			l.SetFlags(0)
			exactError := fmt.Errorf("one particular issue")
			l.Error(exactError)
			close(ech)
			e := <-ech
			if l == nil {
				assert.Nil(t, e)
			} else {
				assert.Equal(t, exactError, e)
			}
			return "error: one particular issue\n"
		}},
		{"error-func/string", func(t testing.TB, l *Log) string {
			ech := make(chan error, 1)
			l.SetErrorFunc(func(e error) { ech <- e })
			l.SetFlags(0)
			l.Errorf("trouble var=%.1f", 3.4)
			close(ech)
			e := <-ech
			if l == nil {
				assert.Nil(t, e)
			} else {
				assert.Equal(t, "trouble var=3.4", e.Error())
			}
			return "error: trouble var=3.4\n"
		}},
		{"component", func(t testing.TB, l *Log) string {
			l.SetFlags(0)
			l.Component("oled").Infof("flush n=%d", 512)
			return "oled: flush n=512\n"
		}},
		{"level-filter", func(t testing.TB, l *Log) string {
			l.SetFlags(0)
			l.SetLevel(LInfo)
			l.Debugf("hidden")
			l.Infof("shown")
			return "shown\n"
		}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name+"/logger=nil", func(t *testing.T) {
			c.fun(t, nil)
		})
		t.Run(c.name, func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			l := NewWriter(buf, LAll)
			expect := c.fun(t, l)
			assert.Equal(t, expect, buf.String())
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	type Case struct {
		input  string
		expect Level
		err    bool
	}
	cases := []Case{
		{"", LInfo, false},
		{"error", LError, false},
		{"Debug", LDebug, false},
		{"all", LAll, false},
		{"verbose", LInfo, true},
	}
	for _, c := range cases {
		l, err := ParseLevel(c.input)
		if c.err {
			require.Error(t, err, c.input)
			continue
		}
		require.NoError(t, err, c.input)
		assert.Equal(t, c.expect, l, c.input)
	}
}

func BenchmarkLog2(b *testing.B) {
	const format = "key pos=%d code=%s"
	prepare := func(level Level) *Log {
		l := NewWriter(bytes.NewBuffer(nil), level)
		l.SetFlags(0)
		return l
	}
	b.Run("enabled", func(b *testing.B) {
		l := prepare(LDebug)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debugf(format, i, "KC_A")
		}
	})
	b.Run("skiplevel", func(b *testing.B) {
		l := prepare(LError)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debugf(format, i, "KC_A")
		}
	})
}

func callerShort(depth int) (file string, line int) {
	var ok bool
	_, file, line, ok = runtime.Caller(depth)
	if !ok {
		file = "???"
		line = 0
	}

	short := file
	for i := len(file) - 1; i > 0; i-- {
		if file[i] == '/' {
			short = file[i+1:]
			break
		}
	}
	file = short

	return
}

func formatCallerShort(depth int) string {
	file, line := callerShort(depth + 1)
	return fmt.Sprintf("%s:%d: ", file, line-1)
}
