package service

// industryCategories lists, per requester industry, the offering categories considered
// directly relevant. Keys and values are compared case-insensitively.
var industryCategories = map[string][]string{
	"retail": {
		"Marketing digital", "E-commerce", "Diseño gráfico", "Fotografía", "Logística", "Punto de venta",
	},
	"comercio": {
		"Marketing digital", "E-commerce", "Diseño gráfico", "Logística", "Punto de venta",
	},
	"restaurant": {
		"Marketing digital", "Fotografía", "Limpieza", "Proveedores de alimentos", "Mantenimiento",
	},
	"hosteleria": {
		"Marketing digital", "Fotografía", "Limpieza", "Proveedores de alimentos", "Mantenimiento",
	},
	"technology": {
		"Desarrollo web", "Software", "Ciberseguridad", "Soporte IT", "Cloud", "Consultoría",
	},
	"tecnologia": {
		"Desarrollo web", "Software", "Ciberseguridad", "Soporte IT", "Cloud", "Consultoría",
	},
	"health": {
		"Software", "Limpieza", "Asesoría legal", "Contabilidad", "Equipamiento médico",
	},
	"salud": {
		"Software", "Limpieza", "Asesoría legal", "Contabilidad", "Equipamiento médico",
	},
	"construction": {
		"Materiales", "Maquinaria", "Arquitectura", "Asesoría legal", "Seguridad laboral",
	},
	"construccion": {
		"Materiales", "Maquinaria", "Arquitectura", "Asesoría legal", "Seguridad laboral",
	},
	"education": {
		"Formación", "Software", "Desarrollo web", "Marketing digital", "Material didáctico",
	},
	"educacion": {
		"Formación", "Software", "Desarrollo web", "Marketing digital", "Material didáctico",
	},
	"professional services": {
		"Contabilidad", "Asesoría legal", "Consultoría", "Marketing digital", "Software",
	},
	"servicios profesionales": {
		"Contabilidad", "Asesoría legal", "Consultoría", "Marketing digital", "Software",
	},
	"manufacturing": {
		"Maquinaria", "Logística", "Mantenimiento", "Materiales", "Consultoría",
	},
	"manufactura": {
		"Maquinaria", "Logística", "Mantenimiento", "Materiales", "Consultoría",
	},
}

// RelevantCategories returns the curated categories for an industry, or nil when unknown.
func RelevantCategories(industry string) []string {
	return industryCategories[normalize(industry)]
}
