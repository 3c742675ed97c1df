package model

import (
	"bufio"
	"io"
	"strconv"
)

// Write serializes the model in the text weight format. Only features with a
// nonzero weight or factor are written, so the declared size of the output
// is the number of such features.
func Write(w io.Writer, m *Model) error {
	var ids []int
	for i := 0; i < Capacity; i++ {
		if !m.isZero(i) {
			ids = append(ids, i)
		}
	}

	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 64)

	buf = append(buf[:0], labelSize+":"...)
	buf = strconv.AppendInt(buf, int64(len(ids)), 10)
	buf = append(buf, ","+labelK+":"...)
	buf = strconv.AppendInt(buf, int64(m.k), 10)
	buf = append(buf, '\n')
	bw.Write(buf)

	bw.WriteString(labelWeights + "\n")
	for _, i := range ids {
		buf = strconv.AppendInt(buf[:0], int64(i), 10)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, m.weights[i], 'g', -1, 64)
		buf = append(buf, '\n')
		bw.Write(buf)
	}

	bw.WriteString(labelFactors + "\n")
	for _, i := range ids {
		buf = strconv.AppendInt(buf[:0], int64(i), 10)
		for _, v := range m.Factor(i) {
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
		}
		buf = append(buf, '\n')
		bw.Write(buf)
	}
	return bw.Flush()
}
