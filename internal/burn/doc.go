// Package burn orchestrates the disc-writing pipeline: it validates a
// playlist against the disc capacity, transcodes each track to CD-DA WAV in
// a staging session, levels the volume across the set, waits for a disc, and
// drives wodim to write it.
package burn
