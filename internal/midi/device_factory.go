package midi

// GetDevice returns the appropriate Device implementation for the given type
func GetDevice(deviceType DeviceType) Device {
	switch deviceType {
	case DeviceTypePush2:
		return &PushDevice{}
	case DeviceTypeGeneric:
		return &GenericDevice{}
	default:
		return &PushDevice{}
	}
}

// ParseDeviceType accepts a configured device name, falling back to Push 2.
func ParseDeviceType(s string) DeviceType {
	switch DeviceType(s) {
	case DeviceTypeGeneric:
		return DeviceTypeGeneric
	default:
		return DeviceTypePush2
	}
}
