//go:build unix

package host

import "bytes"

const (
	sectionType     = 1
	sectionImport   = 2
	sectionFunction = 3
	sectionMemory   = 5
	sectionExport   = 7
	sectionCode     = 10

	kindFunc   = 0x00
	kindMemory = 0x02

	funcTypeByte = 0x60
	valTypeI32   = 0x7f

	opLocalGet = 0x20
	opCall     = 0x10
	opEnd      = 0x0b
)

// ProxyModule returns a core wasm module that imports every host function
// and exports a wrapper of the same name that forwards its arguments, plus
// one page of memory exported as "memory". Instantiating it after the host
// module gives Go callers a guest to call the host functions through.
func (h *Host) ProxyModule() []byte {
	funcs := h.funcs()
	n := uint32(len(funcs))

	var w, sec bytes.Buffer
	w.Write([]byte{0x00, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00})

	// Type i is the signature of host function i
	writeU32(&sec, n)
	for _, f := range funcs {
		sec.WriteByte(funcTypeByte)
		writeI32s(&sec, len(f.paramNames))
		writeI32s(&sec, len(f.resultNames))
	}
	writeSection(&w, sectionType, &sec)

	writeU32(&sec, n)
	for i, f := range funcs {
		writeName(&sec, h.options.ModuleName)
		writeName(&sec, f.name)
		sec.WriteByte(kindFunc)
		writeU32(&sec, uint32(i))
	}
	writeSection(&w, sectionImport, &sec)

	writeU32(&sec, n)
	for i := range funcs {
		writeU32(&sec, uint32(i))
	}
	writeSection(&w, sectionFunction, &sec)

	// One memory, no maximum, one page
	sec.Write([]byte{0x01, 0x00, 0x01})
	writeSection(&w, sectionMemory, &sec)

	writeU32(&sec, n+1)
	for i, f := range funcs {
		writeName(&sec, f.name)
		sec.WriteByte(kindFunc)
		writeU32(&sec, n+uint32(i))
	}
	writeName(&sec, "memory")
	sec.WriteByte(kindMemory)
	writeU32(&sec, 0)
	writeSection(&w, sectionExport, &sec)

	writeU32(&sec, n)
	for i, f := range funcs {
		var body bytes.Buffer
		writeU32(&body, 0) // no locals
		for p := range f.paramNames {
			body.WriteByte(opLocalGet)
			writeU32(&body, uint32(p))
		}
		body.WriteByte(opCall)
		writeU32(&body, uint32(i))
		body.WriteByte(opEnd)

		writeU32(&sec, uint32(body.Len()))
		sec.Write(body.Bytes())
	}
	writeSection(&w, sectionCode, &sec)

	return w.Bytes()
}

// writeSection appends sec to w as section id and resets sec.
func writeSection(w *bytes.Buffer, id byte, sec *bytes.Buffer) {
	w.WriteByte(id)
	writeU32(w, uint32(sec.Len()))
	w.Write(sec.Bytes())
	sec.Reset()
}

func writeI32s(w *bytes.Buffer, n int) {
	writeU32(w, uint32(n))
	for range n {
		w.WriteByte(valTypeI32)
	}
}

func writeName(w *bytes.Buffer, s string) {
	writeU32(w, uint32(len(s)))
	w.WriteString(s)
}

// writeU32 writes v as unsigned LEB128.
func writeU32(w *bytes.Buffer, v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.WriteByte(b)
		if v == 0 {
			return
		}
	}
}
