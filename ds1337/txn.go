package ds1337

// Txn batches field changes against a copy of the timekeeping registers and
// writes them to the chip in a single bus transaction on Commit. A failed Set
// poisons the transaction: Commit then returns that error without writing.
type Txn struct {
	d   *Device
	img RegisterImage
	err error
}

// Begin reads the timekeeping registers and starts a transaction on them.
func (d *Device) Begin() (*Txn, error) {
	img, err := d.ReadImage()
	if err != nil {
		return nil, err
	}
	return &Txn{d: d, img: img}, nil
}

// Set changes one field of the pending image.
func (t *Txn) Set(f Field, v int) error {
	if t.err != nil {
		return t.err
	}
	if err := t.img.Set(f, v); err != nil {
		t.err = err
	}
	return t.err
}

// SetFields changes every field of the pending image.
func (t *Txn) SetFields(f Fields) error {
	if t.err != nil {
		return t.err
	}
	if err := t.img.SetFields(f); err != nil {
		t.err = err
	}
	return t.err
}

// SetTimestamp converts ts with the device's calendar settings and stages
// the result.
func (t *Txn) SetTimestamp(ts uint32) error {
	if t.err != nil {
		return t.err
	}
	f, err := t.d.cal.FieldsFromTimestamp(ts)
	if err != nil {
		t.err = err
		return err
	}
	return t.SetFields(f)
}

// Image returns the pending registers.
func (t *Txn) Image() RegisterImage {
	return t.img
}

// Commit writes the pending registers.
func (t *Txn) Commit() error {
	if t.err != nil {
		return t.err
	}
	return t.d.writeImage(t.img)
}
