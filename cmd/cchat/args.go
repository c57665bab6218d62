package main

import (
	"regexp"
	"strconv"
	"strings"
)

// rangeArgRe matches a bare range value: a single index or a
// lo-hi pair, either side possibly negative.
var rangeArgRe = regexp.MustCompile(`^-?\d+(--?\d+)?$`)

// preprocessArgv merges "-r <range>" into "-r=<range>". Negative
// ranges like -3--1 would otherwise be eaten by the flag parser
// as unknown flags.
func preprocessArgv(argv []string) []string {
	out := make([]string, 0, len(argv))
	for i := 0; i < len(argv); i++ {
		if argv[i] == "-r" && i+1 < len(argv) && rangeArgRe.MatchString(argv[i+1]) {
			out = append(out, "-r="+argv[i+1])
			i++
			continue
		}
		out = append(out, argv[i])
	}
	return out
}

var rangePairRe = regexp.MustCompile(`^(-?\d+)-(-?\d+)$`)

// parseRange resolves a range string against a 1-based sequence of
// maxVal elements. Negative indices count from the end (-1 is the
// last element). Results are clipped to bounds; anything
// unparseable or fully out of range yields nil.
func parseRange(s string, maxVal int) []int {
	resolve := func(v int) int {
		if v < 0 {
			return maxVal + v + 1
		}
		return v
	}

	if m := rangePairRe.FindStringSubmatch(s); m != nil {
		lo, err1 := strconv.Atoi(m[1])
		hi, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			return nil
		}
		lo, hi = resolve(lo), resolve(hi)
		if lo < 1 {
			lo = 1
		}
		if hi > maxVal {
			hi = maxVal
		}
		if lo > hi {
			return nil
		}
		return sequence(lo, hi)
	}

	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	v = resolve(v)
	if v < 1 || v > maxVal {
		return nil
	}
	return []int{v}
}

// computeIndices picks which 1-based turn indices to show. showAll
// wins, then an explicit range, then a trailing count, then the
// configured default count.
func computeIndices(total, n int, rangeStr string, showAll bool, defaultTurns int) []int {
	if total <= 0 {
		return nil
	}
	if showAll {
		return sequence(1, total)
	}
	if rangeStr != "" {
		return parseRange(rangeStr, total)
	}
	if n <= 0 {
		n = defaultTurns
	}
	start := total - n + 1
	if start < 1 {
		start = 1
	}
	return sequence(start, total)
}

func sequence(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		out = append(out, v)
	}
	return out
}
