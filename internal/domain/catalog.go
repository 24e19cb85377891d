package domain

// Category groups the role titles (puestos) available under one job
// category (rubro). The catalog is fixed for the launch city and is served
// verbatim to clients; matching compares rubro and puesto by exact string
// equality, so these literals are the single source of the vocabulary.
type Category struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Puestos []string `json:"puestos"`
}

// Categories is the job catalog for Mar del Plata.
var Categories = []Category{
	{Key: "gastronomia", Label: "Gastronomía", Puestos: []string{"Cocinero", "Ayudante de cocina", "Mozo", "Bachero", "Barman"}},
	{Key: "comercio", Label: "Comercio", Puestos: []string{"Vendedor", "Cajero", "Repositor", "Encargado"}},
	{Key: "construccion", Label: "Construcción", Puestos: []string{"Albañil", "Ayudante", "Electricista", "Plomero", "Pintor"}},
	{Key: "limpieza", Label: "Limpieza", Puestos: []string{"Empleada doméstica", "Personal de limpieza", "Mucama"}},
	{Key: "transporte", Label: "Transporte", Puestos: []string{"Chofer", "Repartidor", "Fletero"}},
	{Key: "administracion", Label: "Administración", Puestos: []string{"Administrativo", "Recepcionista", "Secretaria", "Data entry"}},
}

// Zonas lists the neighbourhoods a worker can advertise as their area.
var Zonas = []string{
	"Centro",
	"La Perla",
	"Güemes",
	"Punta Mogotes",
	"Puerto",
	"Constitución",
	"San Juan",
	"Los Troncos",
	"Otras",
}
