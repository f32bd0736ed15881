package llmprovider

import "time"

// maxSeed is 2^31-1, the largest value every OpenAI-compatible backend accepts.
const maxSeed = 1<<31 - 1

// ResolveSeed returns *seed when set. Otherwise it derives a seed from the
// current time in milliseconds, which changes on every call and therefore
// bypasses response caching on providers that key caches by seed.
func ResolveSeed(seed *int) int {
	return resolveSeedAt(seed, time.Now())
}

func resolveSeedAt(seed *int, now time.Time) int {
	if seed != nil {
		return *seed
	}
	return int(now.UnixMilli() % maxSeed)
}
