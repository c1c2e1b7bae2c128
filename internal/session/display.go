package session

const (
	displayPrefixLen = 6
	displaySuffixLen = 4
)

// ShortenAddress renders an address as its first 6 and last 4 characters joined by "...",
// e.g. "0x1234567890abcdef" becomes "0x1234...cdef". Addresses shorter than 10 characters
// are returned unchanged.
func ShortenAddress(address string) string {
	runes := []rune(address)
	if len(runes) < displayPrefixLen+displaySuffixLen {
		return address
	}

	return string(runes[:displayPrefixLen]) + "..." + string(runes[len(runes)-displaySuffixLen:])
}
