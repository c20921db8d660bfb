package derive

func init() {
	registerAnnotation(TypeLevel, "proxy", 1)
	registerAnnotation(FieldLevel, "proxy", 1)

	registerAnnotation(TypeLevel, "rename", 1)
	registerAnnotation(FieldLevel, "rename", 1)

	registerAnnotation(TypeLevel, "default", 0, 1)
	registerAnnotation(FieldLevel, "default", 0, 1)

	registerAnnotation(TypeLevel, "default_with", 1)
	registerAnnotation(FieldLevel, "default_with", 1)

	registerAnnotation(TypeLevel, "transparent", 0)

	registerAnnotation(FieldLevel, "serialize_none_as_null", 0)

	registerAnnotation(TypeLevel, "skip", 0)
	registerAnnotation(FieldLevel, "skip", 0)
}
