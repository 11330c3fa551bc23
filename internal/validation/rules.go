package validation

var CreatePostRules = Ruleset{
	Require("title", NotEmpty, "Title is required"),
	Require("body", NotEmpty, "Body is required"),
	Require("category", NotEmpty, "Category is required"),
	Optional("postDate", ISO8601, "Post Date must be a valid date"),
	Require("readTime", Numeric, "ReadTime must be a number"),
	Require("excerpt", NotEmpty, "Excerpt is required"),
	Optional("tags", StringOrList, "Tags must be a string"),
	Require("authorName", NotEmpty, "Author name is required"),
	Require("authorImageURL", URL, "Author Image URL must be a valid URL"),
	Optional("featuredImageURL", URL, "Featured Image URL must be a valid URL"),
}

var UpdatePostRules = Ruleset{
	Optional("title", NotEmpty, "Title must not be empty"),
	Optional("body", NotEmpty, "Body must not be empty"),
	Optional("category", NotEmpty, "Category must not be empty"),
	Optional("postDate", ISO8601, "Post Date must be a valid date"),
	Optional("readTime", Numeric, "Read Time must be a number"),
	Optional("excerpt", NotEmpty, "Excerpt must not be empty"),
	Optional("tags", StringOrList, "Tags must be a string"),
	Optional("authorName", NotEmpty, "Author Name must not be empty"),
	Optional("authorImageURL", URL, "Author Image URL must be a valid URL"),
	Optional("featuredImageURL", URL, "Featured Image URL must be a valid URL"),
}

var RegisterRules = Ruleset{
	Require("email", Email, "Please include a valid email"),
	Require("password", NotEmpty, "Password is required"),
	Require("name", NotEmpty, "Name is required"),
}

var CommentRules = Ruleset{
	Require("userName", NotEmpty, "User name is required"),
	Require("text", NotEmpty, "Comment text is required"),
}
