package listing

import "strconv"

// FormatPrice renders a whole-euro amount the Portuguese way: thousands are
// separated with spaces and the euro sign trails, e.g. "250 000 €".
func FormatPrice(price int64) string {
	return groupThousands(price) + " €"
}

// FormatArea renders an area in square meters, "N/A" when unknown.
func FormatArea(area *int) string {
	if area == nil {
		return "N/A"
	}
	return strconv.Itoa(*area) + "m²"
}

// FormatCount renders a site counter. Values of a thousand and above are
// rounded down to "Nk+".
func FormatCount(n int) string {
	if n >= 1000 {
		return strconv.Itoa(n/1000) + "k+"
	}
	return strconv.Itoa(n)
}

// FormatSatisfaction renders the approval rate as a percentage.
func FormatSatisfaction(rate int) string {
	return strconv.Itoa(rate) + "%"
}

func groupThousands(n int64) string {
	digits := strconv.FormatInt(n, 10)
	sign := ""
	if digits[0] == '-' {
		sign = "-"
		digits = digits[1:]
	}

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, d)
	}
	return sign + string(out)
}
