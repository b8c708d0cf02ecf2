package fixmap

// isPrime checks n by trial division, skipping multiples of 2 and 3.
func isPrime(n uint32) bool {
	switch {
	case n <= 1:
		return false
	case n <= 3:
		return true
	case n%2 == 0 || n%3 == 0:
		return false
	}
	for i := uint64(5); i*i <= uint64(n); i += 6 {
		if uint64(n)%i == 0 || uint64(n)%(i+2) == 0 {
			return false
		}
	}
	return true
}

// nextPrime returns the smallest prime strictly greater than n.
func nextPrime(n uint32) uint32 {
	if n <= 1 {
		return 2
	}
	p := n + 1
	for !isPrime(p) {
		p++
	}
	return p
}
