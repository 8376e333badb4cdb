package perm

// Key encodes a permutation as a fixed-width string, one character per
// symbol: symbol s becomes the byte '0'+s.
//
// For n <= 9 every symbol is a single printable digit and Key doubles as the
// DOT node label in pkg/builder's WriteDOT. For n = 10 the tenth symbol becomes the byte
// '0'+10 = ':' (ASCII 0x3A); the key is still unique per permutation but
// callers must not interpret it as a decimal number.
//
// Key(p1) == Key(p2) iff p1 and p2 are the same permutation, which is the
// only property [Table.IndexOf] relies on.
func Key(p []int) string {
	buf := make([]byte, len(p))
	for i, s := range p {
		buf[i] = byte('0' + s)
	}
	return string(buf)
}
