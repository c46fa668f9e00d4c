// Package loop rotates an audio file around a cut offset so the result loops
// seamlessly: material after the cut plays first, material before it plays
// last, and the end flows back into the beginning.
//
// The pipeline is strictly sequential: probe duration, normalize the cut,
// losslessly split the source into tail and head segments, concatenate tail
// then head (stream copy first, decode/re-encode fallback), and commit the
// result with an atomic swap when the destination aliases the source.
//
// ffmpeg and ffprobe are consumed through injectable contracts so tests run
// without a real audio toolchain.
package loop
