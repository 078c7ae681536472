package common

import (
	"log"
	"regexp"
	"strconv"
	"strings"
)

var decoder = regexp.MustCompile(`^([0-9_]+)(?:\.\.([0-9_]+))?([KMGTPE]?)$`)

// DecodeRange parses a range flag of the form "limit" or "start..limit"
// with an optional power-of-ten scale suffix on the limit (K, M, G, T, P,
// E) and optional underscore separators, e.g. "10M" or "14..1_000_014".
// A bare limit means the range starts at 1.
func DecodeRange(rangeString *string, verbose *bool) (uint64, uint64) {
	pieces := decoder.FindStringSubmatch(*rangeString)
	if pieces == nil {
		log.Fatalf(`Unrecognized range format "%s"`, *rangeString)
	}

	start := uint64(1)
	limitField := pieces[1]
	if pieces[2] != "" {
		start = decodeInt(pieces[1])
		limitField = pieces[2]
	}

	limit := decodeInt(limitField)
	switch pieces[3] {
	case "K":
		limit *= 1_000
	case "M":
		limit *= 1_000_000
	case "G":
		limit *= 1_000_000_000
	case "T":
		limit *= 1_000_000_000_000
	case "P":
		limit *= 1_000_000_000_000_000
	case "E":
		limit *= 1_000_000_000_000_000_000
	}
	if start > limit {
		log.Fatalf(`Empty range "%s"`, *rangeString)
	}

	if *verbose {
		log.Printf("Range: [%d, %s]", start, FormatLimit(limit))
	}
	return start, limit
}

// DecodeLimit parses a suffix-scaled limit such as "10G".
func DecodeLimit(limitString *string, verbose *bool) uint64 {
	_, limit := DecodeRange(limitString, verbose)
	return limit
}

// FormatLimit renders a limit with the same scale suffixes DecodeRange
// accepts.
func FormatLimit(limit uint64) string {
	switch {
	case limit >= 1_000_000_000_000_000:
		return strconv.FormatFloat(float64(limit)/1e15, 'f', 1, 64) + "P"
	case limit >= 1_000_000_000_000:
		return strconv.FormatFloat(float64(limit)/1e12, 'f', 1, 64) + "T"
	case limit >= 1_000_000_000:
		return strconv.FormatFloat(float64(limit)/1e9, 'f', 1, 64) + "G"
	case limit >= 1_000_000:
		return strconv.FormatFloat(float64(limit)/1e6, 'f', 1, 64) + "M"
	default:
		return strconv.FormatUint(limit, 10)
	}
}

func decodeInt(field string) uint64 {
	v, err := strconv.ParseUint(strings.ReplaceAll(field, "_", ""), 10, 64)
	if err != nil {
		log.Fatal(err)
	}
	return v
}
