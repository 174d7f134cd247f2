package http

import "github.com/gin-gonic/gin"

// RegisterCatalogRoutes registra las rutas HTTP del catálogo.
func RegisterCatalogRoutes(r gin.IRouter, catalog *CatalogHandler, pets *PetHandler) {
	p := r.Group("/pets")
	{
		p.GET("", catalog.ListPets)
		p.GET("/export", catalog.ExportPets)
		p.POST("", pets.CreatePet)
		p.GET("/:id", pets.GetPet)
		p.POST("/:id/adopt", pets.AdoptPet)
		p.DELETE("/:id", pets.DeletePet)
		p.GET("/:id/applications", catalog.ListApplicationsForPet)
	}

	r.GET("/shelters", catalog.ListShelters)
	r.GET("/shelter-applications", catalog.ListShelterApplications)
	r.GET("/adoption-applications", catalog.ListAdoptionApplications)
	r.GET("/posts", catalog.ListPosts)
	r.GET("/tags", catalog.ListTags)
	r.GET("/breeds", catalog.ListBreeds)
	r.GET("/species", catalog.ListSpecies)
	r.GET("/attributes", catalog.ListAttributes)
	r.GET("/users", catalog.ListUsers)
	r.GET("/users/:id/favorites", catalog.ListFavorites)
}
