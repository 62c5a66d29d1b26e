package domain

// LikeLimit es la cuota reportada por el servicio remoto. Es de solo
// lectura para este cliente: se refresca por polling después de cada like
// exitoso, así que cierta staleness es esperada.
type LikeLimit struct {
	LikesLeft               int    `json:"likes_left"`
	SuperlikesLeft          int    `json:"superlikes_left"`
	FreeSuperlikesLeft      int    `json:"free_superlikes_left"`
	FreeSuperlikeExpiration string `json:"free_superlike_expiration,omitempty"`
}
