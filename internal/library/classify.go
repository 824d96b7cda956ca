package library

import (
	"net/url"
	"strings"
)

//pathCharacters unreserved, sub-delims and path separators other than letters and digits
const pathCharacters = "-._~!$&'()*+,;=:@/"

//Kind represents library reference kind
type Kind int

const (
	//Relative reference without scheme or authority
	Relative Kind = iota
	//Absolute any other reference
	Absolute
)

func (k Kind) String() string {
	if k == Relative {
		return "relative"
	}
	return "absolute"
}

//Classify returns Relative only if reference parses as a URI without scheme and host whose path is the reference verbatim
func Classify(reference string) Kind {
	URL, err := url.Parse(reference)
	if err != nil {
		return Absolute
	}
	if URL.IsAbs() || URL.Host != "" || URL.Opaque != "" {
		return Absolute
	}
	if URL.Path != reference || !isPathReference(reference) {
		return Absolute
	}
	return Relative
}

//isPathReference returns true if every character is allowed in an RFC 3986 path; non ASCII characters are accepted
func isPathReference(reference string) bool {
	for i := 0; i < len(reference); i++ {
		c := reference[i]
		switch {
		case c >= 0x80:
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case strings.IndexByte(pathCharacters, c) != -1:
		default:
			return false
		}
	}
	return true
}
