package funcs

import (
	"bytes"
	"encoding/hex"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/google/uuid"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	xerrors "github.com/mlourenco/extrafn/core/errors"
)

// RegisterMiscFunctions registers the utility scalars that round out the
// extension pack.
func RegisterMiscFunctions(r *Registry) {
	r.Register(NewScalarFunc("uuid", 0, uuidFunc))
	r.Register(NewScalarFunc("blake3", 1, blake3Func))
	r.Register(NewScalarFunc("xzcompress", 1, xzCompressFunc))
	r.Register(NewScalarFunc("xzuncompress", 1, xzUncompressFunc))
	r.Register(NewScalarFunc("xmlextract", 2, xmlExtractFunc))
}

// uuidFunc returns a random version-4 UUID. It is the one non-deterministic
// function in the catalog; driver glue must register it as such.
func uuidFunc(args []Value) (Value, error) {
	return NewTextValue(uuid.NewString()), nil
}

// blake3Func returns the lowercase hex BLAKE3-256 digest of its argument.
func blake3Func(args []Value) (Value, error) {
	if args[0].IsNull() {
		return NewNullValue(), nil
	}
	sum := blake3.Sum256(args[0].AsBlob())
	return NewTextValue(hex.EncodeToString(sum[:])), nil
}

// xzCompressFunc compresses its argument into an xz stream blob.
func xzCompressFunc(args []Value) (Value, error) {
	if args[0].IsNull() {
		return NewNullValue(), nil
	}

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, xerrors.Wrap(err, "xzcompress")
	}
	if _, err := w.Write(args[0].AsBlob()); err != nil {
		return nil, xerrors.Wrap(err, "xzcompress")
	}
	if err := w.Close(); err != nil {
		return nil, xerrors.Wrap(err, "xzcompress")
	}
	return NewBlobValue(buf.Bytes()), nil
}

// xzUncompressFunc expands an xz stream blob. Input that is not a valid xz
// stream aborts the call.
func xzUncompressFunc(args []Value) (Value, error) {
	if args[0].IsNull() {
		return NewNullValue(), nil
	}

	r, err := xz.NewReader(bytes.NewReader(args[0].AsBlob()))
	if err != nil {
		return nil, xerrors.Wrap(err, "xzuncompress: not an xz stream")
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, xerrors.Wrap(err, "xzuncompress")
	}
	return NewBlobValue(out), nil
}

// xmlExtractFunc evaluates an XPath expression against an XML document and
// returns the inner text of the first matching node, in the manner of
// SQL/XML's ExtractValue. No match yields NULL; a malformed document or path
// aborts the call.
func xmlExtractFunc(args []Value) (Value, error) {
	if args[0].IsNull() || args[1].IsNull() {
		return NewNullValue(), nil
	}

	doc, err := xmlquery.Parse(strings.NewReader(args[0].AsString()))
	if err != nil {
		return nil, xerrors.Wrap(err, "xmlextract: parse document")
	}
	expr, err := xpath.Compile(args[1].AsString())
	if err != nil {
		return nil, xerrors.Wrap(err, "xmlextract: compile path")
	}

	node := xmlquery.QuerySelector(doc, expr)
	if node == nil {
		return NewNullValue(), nil
	}
	return NewTextValue(node.InnerText()), nil
}
