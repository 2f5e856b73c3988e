package serializers

// MarshalUnmarshaler converts records to and from their stored form.
type MarshalUnmarshaler interface {
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(b []byte, output interface{}) error
	Name() string
}
