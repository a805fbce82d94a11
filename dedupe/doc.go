/*
Package dedupe contains the membership structures used to suppress repeated
public actions.

Filter is a bloom filter: a fixed number of bits addressed by hashCount
SHA-256 derived positions per key. It never reports an inserted key as
absent, but may report a never inserted key as present once enough bits are
set. Bits are never cleared, so the false positive rate only climbs for the
lifetime of the instance. Size it up front:

	p ~= (1 - e^(-k*n/m))^k

* m=10000 bits, k=7, n=500 keys:    p ~= 1:5.1k
* m=10000 bits, k=7, n=1000 keys:   p ~= 1:120
* m=100000 bits, k=7, n=10000 keys: p ~= 1:120

False positives block a legitimate vote (tolerable).
False negatives would allow double voting (never happens).

Rotating swaps the Filter for an empty one on a schedule, trading forgotten
history for a bounded error rate.

Recent is the opposite structure, heavily inspired from Jeffrey Hodge's
OppoBloom Filter (https://github.com/jmhodges/opposite_of_a_bloom_filter).
It uses a hashtable of xxHash64 values and never reports an unseen key as
seen (up to 64 bit collisions), but forgets keys when their slot is reused.
It throttles cheap actions where letting a repeat through is harmless.
*/
package dedupe
