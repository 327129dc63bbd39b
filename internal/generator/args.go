package generator

import (
	"os"
	"strings"

	"git.home.luguber.info/inful/docpipe/internal/docgen"
)

// Args renders inputs as Dokka command line arguments. Empty lists and
// values are omitted.
func Args(in docgen.Inputs) []string {
	var args []string
	addList := func(flag string, values []string) {
		if len(values) > 0 {
			args = append(args, flag, strings.Join(values, string(os.PathListSeparator)))
		}
	}
	addValue := func(flag, value string) {
		if value != "" {
			args = append(args, flag, value)
		}
	}

	addList("-src", in.SourceDirs)
	addList("-classpath", in.Classpath)
	addList("-samples", in.SamplesDirs)
	addList("-include", in.IncludeDirs)
	addValue("-module", in.ModuleName)
	addValue("-output", in.OutputDir)
	addValue("-format", in.OutputFormat)
	for _, l := range in.SourceLinks {
		args = append(args, "-srcLink", SourceLinkArg(l))
	}
	return args
}

// SourceLinkArg formats a link definition as path=url[#suffix].
func SourceLinkArg(l docgen.LinkDefinition) string {
	arg := l.Path + "=" + l.URL
	if l.LineSuffix != nil && *l.LineSuffix != "" {
		suffix := *l.LineSuffix
		if !strings.HasPrefix(suffix, "#") {
			suffix = "#" + suffix
		}
		arg += suffix
	}
	return arg
}

// Level is the severity assigned to a line of generator output.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// Classify maps a generator output line to a log level by its prefix.
func Classify(line string) Level {
	l := strings.ToUpper(strings.TrimSpace(line))
	switch {
	case strings.HasPrefix(l, "ERROR"), strings.HasPrefix(l, "E:"), strings.HasPrefix(l, "EXCEPTION"):
		return LevelError
	case strings.HasPrefix(l, "WARN"), strings.HasPrefix(l, "W:"):
		return LevelWarn
	default:
		return LevelInfo
	}
}
