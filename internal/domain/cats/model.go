package cats

import (
	"strings"
	"time"
)

// Cat es el único recurso persistido.
type Cat struct {
	ID int64

	Name  string
	Breed string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Params es la allow-list de campos que aceptamos del caller.
// Cualquier otro campo enviado se descarta antes de llegar al service.
type Params struct {
	Name  string
	Breed string
}

func (p Params) normalized() Params {
	return Params{
		Name:  strings.TrimSpace(p.Name),
		Breed: strings.TrimSpace(p.Breed),
	}
}

// ParamsFrom filtra un mapa arbitrario (form, json) quedándose solo con name/breed.
func ParamsFrom(raw map[string]string) Params {
	return Params{
		Name:  raw["name"],
		Breed: raw["breed"],
	}
}

// Apply devuelve una copia del gato con los campos del allow-list.
// Se usa para re-mostrar valores no guardados en el form.
func (p Params) Apply(c Cat) Cat {
	c.Name = p.Name
	c.Breed = p.Breed
	return c
}
