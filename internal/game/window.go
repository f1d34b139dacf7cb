package game

// BeatWindow yields, for each integer beat starting at 0, the notes whose
// [floor(start), ceil(end)] span covers that beat.
//
// It works on its own copy of the note references. Once a note reaches its
// last beat it is swapped to the front of the scratch slice and the retire
// pointer moves past it, so it is never scanned again. The order of the
// unretired suffix is not kept, only its membership matters. Keep the swap,
// an order preserving removal makes every beat linear in the remaining notes.
type BeatWindow struct {
	notes   []*Note
	retired int
	beat    int

	visit func(*Note) // called for every scanned note, used by tests
}

func NewBeatWindow(notes []*Note) *BeatWindow {
	scratch := make([]*Note, len(notes))
	copy(scratch, notes)
	return &BeatWindow{notes: scratch}
}

// Next returns the next beat index and its notes, ok is false once every
// note has been retired. Notes keep scan order within a beat.
func (w *BeatWindow) Next() (beat int, notes []*Note, ok bool) {
	if w.Done() {
		return w.beat, nil, false
	}

	beat = w.beat
	notes = make([]*Note, 0, max(8, (len(w.notes)-w.retired)/4))
	for i := w.retired; i < len(w.notes); i++ {
		note := w.notes[i]
		if nil != w.visit {
			w.visit(note)
		}

		first, last := note.Span()
		if first <= beat && beat <= last {
			notes = append(notes, note)
		}

		// A note ending before beat 0 would otherwise never retire
		if last <= beat {
			w.notes[i] = w.notes[w.retired]
			w.notes[w.retired] = note
			w.retired++
		}
	}

	w.beat++
	return beat, notes, true
}

// Done reports whether every note has been retired
func (w *BeatWindow) Done() bool {
	return w.retired >= len(w.notes)
}

// Seek advances the window until the given beat has been produced and
// returns the notes of that beat. Beats already produced return nil.
func (w *BeatWindow) Seek(beat int) []*Note {
	for w.beat <= beat {
		b, notes, ok := w.Next()
		if !ok {
			return nil
		}
		if b == beat {
			return notes
		}
	}
	return nil
}
