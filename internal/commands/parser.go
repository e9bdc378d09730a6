// Package commands parses the approval-channel grammar: a handful of verbs,
// optionally followed by index lists and ranges ("1-3,5").
package commands

import (
	"sort"
	"strconv"
	"strings"
)

// Verb is one recognized bot command.
type Verb string

const (
	VerbStart      Verb = "start"
	VerbHelp       Verb = "help"
	VerbTest       Verb = "test"
	VerbAnalyze    Verb = "analyze"
	VerbYes        Verb = "yes"
	VerbNo         Verb = "no"
	VerbDeleteOnly Verb = "delete_only"
	VerbExcept     Verb = "except"
	VerbDetails    Verb = "details"
	VerbBackups    Verb = "backups"
	VerbSummary    Verb = "summary"
	VerbUnknown    Verb = ""
)

var verbs = map[string]Verb{
	"start":       VerbStart,
	"help":        VerbHelp,
	"test":        VerbTest,
	"analyze":     VerbAnalyze,
	"yes":         VerbYes,
	"no":          VerbNo,
	"delete_only": VerbDeleteOnly,
	"except":      VerbExcept,
	"details":     VerbDetails,
	"backups":     VerbBackups,
	"summary":     VerbSummary,
}

// Command is one parsed inbound message.
type Command struct {
	Verb    Verb
	Indices []int
	Args    string
}

// Parse parses a raw inbound message. The verb may carry a leading slash and
// a "@botname" suffix (how Telegram addresses group commands). Unrecognized
// input yields VerbUnknown.
func Parse(text string) Command {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return Command{Verb: VerbUnknown}
	}

	word := strings.TrimPrefix(fields[0], "/")
	if i := strings.IndexByte(word, '@'); i >= 0 {
		word = word[:i]
	}

	verb, ok := verbs[strings.ToLower(word)]
	if !ok {
		return Command{Verb: VerbUnknown, Args: strings.Join(fields, " ")}
	}

	args := strings.Join(fields[1:], " ")
	cmd := Command{Verb: verb, Args: args}

	if verb == VerbDeleteOnly || verb == VerbExcept {
		cmd.Indices = ParseIndexRanges(args)
	}

	return cmd
}

// ParseIndexRanges parses comma or space separated indices with inclusive
// ranges: "1-3,5" and "5,1-3" both yield [1 2 3 5]. Malformed parts are
// skipped; the result is deduplicated and sorted. An empty or fully
// malformed input yields an empty slice.
func ParseIndexRanges(s string) []int {
	seen := make(map[int]struct{})

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	for _, part := range parts {
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			start, err1 := strconv.Atoi(strings.TrimSpace(lo))
			end, err2 := strconv.Atoi(strings.TrimSpace(hi))
			if err1 != nil || err2 != nil {
				continue
			}
			for n := start; n <= end; n++ {
				seen[n] = struct{}{}
			}
			continue
		}

		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		seen[n] = struct{}{}
	}

	out := make([]int, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
