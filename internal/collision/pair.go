package collision

// CanonicalPair orders two user IDs into the canonical (userA, userB) form:
// the numerically smaller ID is always userA. Applied before every read and
// write of pairwise records, so detect(u1,u2) and detect(u2,u1) land on the
// same Connection row.
func CanonicalPair(a, b uint64) (uint64, uint64) {
	if b < a {
		return b, a
	}
	return a, b
}
