package catalog

const (
	MsgProductCreated = "Product created."
	MsgProductUpdated = "Product updated."
	MsgImageUploaded  = "Image uploaded."
	MsgSlugTaken      = "Slug already in use."
	MsgImageMissing   = "Image file is required."
	MsgImageTooLarge  = "Image file is too large."
	MsgBadImage       = "Unsupported image file."
)
