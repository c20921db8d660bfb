package processor

import (
	"fmt"
	"io"
	"strings"

	"github.com/jhump/derive"
)

// WriteResult writes the given result to w. The extracted facts are written
// as comments, followed by each impl header with an empty body:
//
//    // Pair: rename="pair"
//    //   left: wire="l" default
//    //   right: wire="right" skip
//    impl<T: nanoserde::SerJson, > nanoserde::SerJson for Pair<T, > {}
func WriteResult(w io.Writer, res *Result) error {
	var sb strings.Builder
	sb.WriteString("// ")
	sb.WriteString(res.Decl.TypeName())
	if flags := typeFlags(res.Type); len(flags) > 0 {
		sb.WriteString(": ")
		sb.WriteString(strings.Join(flags, " "))
	}
	sb.WriteString("\n")
	writeMembers(&sb, "//   ", res.Members)
	for _, impl := range res.Impls {
		fmt.Fprintf(&sb, "%s {}\n", impl.Header)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeMembers(sb *strings.Builder, indent string, members []MemberFacts) {
	for _, m := range members {
		fmt.Fprintf(sb, "%s%s: %s\n", indent, m.Name, strings.Join(memberFlags(m), " "))
		writeMembers(sb, indent+"  ", m.Fields)
	}
}

func defaultFlag(d derive.DefaultValue) []string {
	switch d.Kind {
	case derive.ImplicitDefault:
		return []string{"default"}
	case derive.ExplicitDefault:
		return []string{fmt.Sprintf("default=%q", d.Expr)}
	default:
		return nil
	}
}

func typeFlags(t TypeFacts) []string {
	var flags []string
	if t.Proxy != "" {
		flags = append(flags, fmt.Sprintf("proxy=%q", t.Proxy))
	}
	if t.Rename != "" {
		flags = append(flags, fmt.Sprintf("rename=%q", t.Rename))
	}
	flags = append(flags, defaultFlag(t.Default)...)
	if t.DefaultWith != "" {
		flags = append(flags, fmt.Sprintf("default_with=%q", t.DefaultWith))
	}
	if t.Transparent {
		flags = append(flags, "transparent")
	}
	if t.Skip {
		flags = append(flags, "skip")
	}
	return flags
}

func memberFlags(m MemberFacts) []string {
	flags := []string{fmt.Sprintf("wire=%q", m.WireName)}
	if m.Proxy != "" {
		flags = append(flags, fmt.Sprintf("proxy=%q", m.Proxy))
	}
	flags = append(flags, defaultFlag(m.Default)...)
	if m.DefaultWith != "" {
		flags = append(flags, fmt.Sprintf("default_with=%q", m.DefaultWith))
	}
	if m.Skip {
		flags = append(flags, "skip")
	}
	if m.NoneAsNull {
		flags = append(flags, "none_as_null")
	}
	return flags
}
