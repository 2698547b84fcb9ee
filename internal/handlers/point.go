package handlers

import "github.com/gorilla/schema"

// point uses wire coordinates: X is the column, Y the row.
type point struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

var pointDecoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

func decodePoint(src map[string][]string) (point, error) {
	var p point
	err := pointDecoder.Decode(&p, src)
	return p, err
}
