package utils

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

func CalculateOffset(page, perPage int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * perPage
}

// ClampLimit applies the default for non-positive limits and caps the rest at max
func ClampLimit(limit, defaultLimit, max int) int {
	if limit < 1 {
		limit = defaultLimit
	}
	if max > 0 && limit > max {
		return max
	}
	return limit
}
