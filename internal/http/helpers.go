package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"comparador/internal/core"
)

// parseYears parses the comma-separated years parameter. An absent or empty
// parameter means "all available years".
func parseYears(raw string, available []int) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		out := make([]int, len(available))
		copy(out, available)
		return out, nil
	}

	avail := make(map[int]struct{}, len(available))
	for _, y := range available {
		avail[y] = struct{}{}
	}

	seen := map[int]struct{}{}
	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		y, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q", part)
		}
		if _, ok := avail[y]; !ok {
			return nil, fmt.Errorf("year %d is not in the dataset", y)
		}
		if _, dup := seen[y]; dup {
			continue
		}
		seen[y] = struct{}{}
		out = append(out, y)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no valid years in %q", raw)
	}
	sort.Ints(out)
	return out, nil
}

// placeholder rendered wherever a value is undefined. Never "0".
const placeholder = "—"

// formatBRL renders a monetary value Brazilian style: "R$ 1.234.568",
// rounded to whole units with dots as thousands separators.
func formatBRL(v core.Value) string {
	f, ok := v.Float64()
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return placeholder
	}

	neg := f < 0
	n := int64(math.Round(math.Abs(f)))
	digits := strconv.FormatInt(n, 10)

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}

	if neg {
		return "-R$ " + b.String()
	}
	return "R$ " + b.String()
}

// formatPct renders a ratio as a percentage with a decimal comma,
// e.g. 0.123 -> "12,3%".
func formatPct(v core.Value, decimals int) string {
	f, ok := v.Float64()
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return placeholder
	}
	return decimalComma(f*100, decimals) + "%"
}

// formatTimes renders a multiplier, e.g. 5.04 -> "5,0x".
func formatTimes(v core.Value, decimals int) string {
	f, ok := v.Float64()
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return placeholder
	}
	return decimalComma(f, decimals) + "x"
}

// formatPoints renders a signed percentage-point difference, e.g. "+2,3 p.p.".
func formatPoints(v core.Value, decimals int) string {
	f, ok := v.Float64()
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return placeholder
	}
	s := decimalComma(f, decimals)
	if f > 0 {
		s = "+" + s
	}
	return s + " p.p."
}

func decimalComma(f float64, decimals int) string {
	return strings.Replace(strconv.FormatFloat(f, 'f', decimals, 64), ".", ",", 1)
}

// clientIP extracts the caller address, honoring X-Forwarded-For from a
// fronting proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i > 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed encoding JSON response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string, extra map[string]string) {
	body := map[string]string{"error": msg}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, status, body)
}
