package bomupload

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

type RowAction string

const (
	ActionCreate RowAction = "create"
	ActionUpdate RowAction = "update"
	ActionIgnore RowAction = "ignore"
)

// ParsedRow: one candidate inventory line recovered from a supplier
// document. Lives only for the duration of an upload session.
type ParsedRow struct {
	Name            string    `json:"name"`
	Quantity        int       `json:"quantity"`
	UnitCost        float64   `json:"unit_cost"`
	SKU             string    `json:"sku"`
	Size            string    `json:"size"`
	Color           string    `json:"color"`
	Vendor          string    `json:"vendor"`
	HSN             string    `json:"hsn"`
	Action          RowAction `json:"action"`
	MatchedItemID   *uint     `json:"matched_item_id"`
	MatchedItemName string    `json:"matched_item_name"`
}

// Lines starting with these markers are table headers, not items.
var headerMarkers = []string{
	"item", "name", "product", "description", "particulars",
	"sr no", "sr.", "s.no", "sno", "sl no", "serial",
}

// Lines starting with these markers are summary/footer rows.
var footerMarkers = []string{
	"total", "subtotal", "sub total", "sub-total", "grand total",
	"tax", "gst", "cgst", "sgst", "igst", "vat",
	"discount", "round off", "amount in words",
}

// Serial markers like "1." or "2)" at the start of a line are row
// numbering, not quantities, and are stripped before the cascades run.
var serialPrefixRe = regexp.MustCompile(`^\s*\d+\s*[.)\]]\s+`)

// Quantity patterns, in priority order. The first match wins and its
// substring is removed from the working name. The order is a
// deliberate tie-break between ambiguous readings (a labelled qty
// beats a coincidental trailing number) and must not be reshuffled.
var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(\d+)\s*(?:pcs|pc|pieces|piece|nos|units?)\b`),
	regexp.MustCompile(`(?i)\bqty[.:\-\s]*(\d+)\b`),
	regexp.MustCompile(`^(\d{1,4})\s+`),
	regexp.MustCompile(`(?i)\bx\s*(\d+)\b`),
	// Trailing bare numbers are only read as a count when small;
	// trailing 3+ digit figures are almost always prices.
	regexp.MustCompile(`\s(\d{1,2})$`),
}

// Price patterns, in priority order, matched after the quantity
// substring has been removed.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:\brs\.?|\binr\b|₹)\s*([\d,]+(?:\.\d+)?)`),
	regexp.MustCompile(`@\s*([\d,]+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)([\d,]+(?:\.\d+)?)\s*(?:rs\b|inr\b|/-)`),
	regexp.MustCompile(`(?i)\b(?:price|rate|cost|mrp)\s*[:\-]?\s*([\d,]+(?:\.\d+)?)`),
}

// Size patterns, in priority order. Matches are recorded but not
// removed here; removal happens during name cleanup.
var sizePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(xs|s|m|l|xl|xxl|xxxl|2xl|3xl|free\s*size)\b`),
	regexp.MustCompile(`(?i)\bsize\s*[:\-]?\s*([a-z0-9]+)\b`),
	regexp.MustCompile(`\b([2-5][0-9])\b`),
}

var colorVocabulary = []string{
	"black", "white", "red", "blue", "green", "yellow", "pink",
	"purple", "orange", "brown", "grey", "gray", "navy", "maroon",
	"beige", "cream", "gold", "silver", "olive", "teal", "khaki",
	"mustard", "peach", "turquoise", "lavender", "wine", "rust",
}

var colorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(` + strings.Join(colorVocabulary, "|") + `)\b`),
	regexp.MustCompile(`(?i)\bcolou?r\s*[:\-]?\s*([a-z]+)\b`),
}

var (
	lineSplitRe   = regexp.MustCompile(`[\r\n]+`)
	punctuationRe = regexp.MustCompile(`[-–—_.,;:|/#*()\[\]{}'"@]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	digitsOnlyRe  = regexp.MustCompile(`^\d+$`)
)

// ParseText turns a block of free-form supplier text into candidate
// rows. Every row starts as action=create; reconciliation against the
// catalog happens later.
func ParseText(text string) []ParsedRow {
	var rows []ParsedRow

	for _, rawLine := range lineSplitRe.Split(text, -1) {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		if isHeaderLine(line) || isFooterLine(line) {
			continue
		}

		if row, ok := parseLine(line); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range headerMarkers {
		if strings.HasPrefix(lower, marker) {
			return true
		}
	}
	return false
}

func isFooterLine(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range footerMarkers {
		if strings.HasPrefix(lower, marker) {
			return true
		}
	}
	return false
}

func parseLine(line string) (ParsedRow, bool) {
	working := serialPrefixRe.ReplaceAllString(line, "")

	quantity := 1
	for _, re := range quantityPatterns {
		match := re.FindStringSubmatchIndex(working)
		if match == nil {
			continue
		}
		if n, err := strconv.Atoi(working[match[2]:match[3]]); err == nil && n >= 1 {
			quantity = n
		}
		// Consume the matched text either way so an invalid count
		// ("0 pcs") does not leak into the cleaned name.
		working = working[:match[0]] + " " + working[match[1]:]
		break
	}

	unitCost := 0.0
	for _, re := range pricePatterns {
		match := re.FindStringSubmatchIndex(working)
		if match == nil {
			continue
		}
		raw := strings.ReplaceAll(working[match[2]:match[3]], ",", "")
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			unitCost = v
		}
		working = working[:match[0]] + " " + working[match[1]:]
		break
	}

	size := ""
	sizeMatch := ""
	for _, re := range sizePatterns {
		if m := re.FindStringSubmatch(working); m != nil {
			size = strings.ToUpper(strings.TrimSpace(m[1]))
			sizeMatch = m[0]
			break
		}
	}

	color := ""
	for _, re := range colorPatterns {
		if m := re.FindStringSubmatch(working); m != nil {
			color = titleCase(m[1])
			break
		}
	}

	name := cleanName(working, size, sizeMatch, color)
	if len(name) < 2 || digitsOnlyRe.MatchString(name) {
		return ParsedRow{}, false
	}

	return ParsedRow{
		Name:     name,
		Quantity: quantity,
		UnitCost: unitCost,
		SKU:      generateSKU(name, size),
		Size:     size,
		Color:    color,
		Action:   ActionCreate,
	}, true
}

// cleanName normalizes punctuation to spaces, collapses whitespace and
// strips the detected size and color tokens from the candidate name.
func cleanName(working, size, sizeMatch, color string) string {
	name := punctuationRe.ReplaceAllString(working, " ")
	name = whitespaceRe.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)

	if size != "" {
		// Drop a leading label first: when the size matched as a bare
		// token ("... Size M" matches on "M" alone) the label word
		// would otherwise survive in the name.
		name = removeWordSequence(name, "size "+size)
		if sizeMatch != "" {
			name = removeWordSequence(name, whitespaceRe.ReplaceAllString(punctuationRe.ReplaceAllString(sizeMatch, " "), " "))
		}
		name = removeWord(name, size)
	}
	if color != "" {
		name = removeWordSequence(name, "color "+color)
		name = removeWordSequence(name, "colour "+color)
		// A color that leads the name is part of the product name
		// ("Blue Jeans"), not an attribute token to strip.
		if !strings.EqualFold(firstWord(name), color) {
			name = removeWord(name, color)
		}
	}

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(name, " "))
}

func removeWord(name, word string) string {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(re.ReplaceAllString(name, " "), " "))
}

func removeWordSequence(name, seq string) string {
	seq = strings.TrimSpace(seq)
	if seq == "" {
		return name
	}
	parts := strings.Fields(seq)
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	re := regexp.MustCompile(`(?i)\b` + strings.Join(parts, `\s+`) + `\b`)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(re.ReplaceAllString(name, " "), " "))
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func titleCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// generateSKU builds a fallback SKU: first three letters of the name,
// the size (or STD), and a short random suffix. No collision check
// against existing SKUs; the suffix makes clashes unlikely in practice.
func generateSKU(name, size string) string {
	var letters []rune
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letters = append(letters, r)
			if len(letters) == 3 {
				break
			}
		}
	}
	prefix := strings.ToUpper(string(letters))
	if prefix == "" {
		prefix = "ITM"
	}

	sizePart := strings.ReplaceAll(size, " ", "")
	if sizePart == "" {
		sizePart = "STD"
	}

	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return prefix + "-" + sizePart + "-" + suffix
}
