package httpapi

import (
	"net/http"
	"strconv"

	"domiva/listing"
)

const msgNotAuthenticated = "Sessão expirada. Faça login novamente."

type profileResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

// handleProfile returns the signed-in user's dashboard profile, creating it
// from account metadata on first visit.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	client := s.client(r)
	if !client.IsAuthenticated(r.Context()) {
		respondError(w, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	p, err := client.EnsureProfile(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Erro ao carregar o perfil. Tente novamente.")
		return
	}

	respondJSON(w, http.StatusOK, profileResponse{
		ID:    p.ID,
		Name:  p.Name,
		Email: p.Email,
		Phone: p.Phone,
		Role:  p.Role,
	})
}

type ownerResponse struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type listingResponse struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Price          int64          `json:"price"`
	PriceFormatted string         `json:"priceFormatted"`
	Location       string         `json:"location"`
	Typology       string         `json:"typology"`
	Rooms          *int           `json:"rooms,omitempty"`
	Bathrooms      *int           `json:"bathrooms,omitempty"`
	Area           *int           `json:"area,omitempty"`
	AreaFormatted  string         `json:"areaFormatted"`
	Images         []string       `json:"images,omitempty"`
	Owner          *ownerResponse `json:"owner,omitempty"`
}

func (s *Server) handleFeaturedListings(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limite"))

	listings, err := s.listings.Featured(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Erro ao carregar os imóveis. Tente novamente.")
		return
	}

	items := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		item := listingResponse{
			ID:             l.ID,
			Title:          l.Title,
			Price:          l.Price,
			PriceFormatted: listing.FormatPrice(l.Price),
			Location:       l.LocationText,
			Typology:       l.Typology,
			Rooms:          l.Rooms,
			Bathrooms:      l.Bathrooms,
			Area:           l.Area,
			AreaFormatted:  listing.FormatArea(l.Area),
			Images:         l.Images,
		}
		if l.Owner != nil {
			item.Owner = &ownerResponse{Name: l.Owner.Name, Role: l.Owner.Role}
		}
		items = append(items, item)
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"listings": items})
}

type statsResponse struct {
	Listings              int    `json:"listings"`
	ListingsFormatted     string `json:"listingsFormatted"`
	Users                 int    `json:"users"`
	UsersFormatted        string `json:"usersFormatted"`
	Satisfaction          int    `json:"satisfaction"`
	SatisfactionFormatted string `json:"satisfactionFormatted"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := s.listings.Stats(r.Context())
	respondJSON(w, http.StatusOK, statsResponse{
		Listings:              stats.Listings,
		ListingsFormatted:     listing.FormatCount(stats.Listings),
		Users:                 stats.Users,
		UsersFormatted:        listing.FormatCount(stats.Users),
		Satisfaction:          stats.Satisfaction,
		SatisfactionFormatted: listing.FormatSatisfaction(stats.Satisfaction),
	})
}
