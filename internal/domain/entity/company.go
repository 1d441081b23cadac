package entity

// CompanyProfile datos fijos del emisor que se copian en cada factura nueva.
type CompanyProfile struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// DefaultCompanyProfile perfil de la tienda cuando la configuración no define otro.
func DefaultCompanyProfile() CompanyProfile {
	return CompanyProfile{
		Name:    "FreshFruits Co.",
		Email:   "sales@freshfruits.com",
		Phone:   "+91 98765 43210",
		Address: "123 Fruit Market, Kochi, Kerala 682001",
	}
}
