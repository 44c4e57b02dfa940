package registry

// SetLetters makes AllocateName draw suffix letters from letters in order.
// This is exported for testing purposes only.
func (r *Registry) SetLetters(letters string) {
	i := 0
	r.letter = func() byte {
		b := letters[i%len(letters)]
		i++
		return b
	}
}
