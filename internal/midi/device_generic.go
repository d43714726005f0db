package midi

// GenericDevice implements Device for controllers without addressable lights.
// It shares the Push 2 control layout so that pads and buttons still route.
type GenericDevice struct{}

func (d *GenericDevice) Activate(send SendFunc) error {
	return nil
}

func (d *GenericDevice) SetKeyColor(send SendFunc, note, color uint8) error {
	return nil
}

func (d *GenericDevice) SetControlLight(send SendFunc, cc, value uint8) error {
	return nil
}

func (d *GenericDevice) ClearAll(send SendFunc) error {
	return nil
}

func (d *GenericDevice) Layout() Layout {
	return Push2Layout
}
