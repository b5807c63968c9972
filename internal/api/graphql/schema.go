package graphql

// Schema declares the typed operation surface. The password hash is
// deliberately absent from the User type.
const Schema = `
	schema {
		query: RootQuery
		mutation: RootMutation
	}

	type RootQuery {
		login(email: String!, password: String!): AuthData!
		posts(page: Int): PostData!
		post(id: ID!): Post!
		user: User!
	}

	type RootMutation {
		createUser(userInput: UserInputData!): User!
		createPost(postInput: PostInputData!): Post!
		updatePost(id: ID!, postInput: PostInputData!): Post!
		deletePost(id: ID!): Boolean!
		updateStatus(status: String!): User!
	}

	type Post {
		id: ID!
		title: String!
		content: String!
		imageUrl: String!
		creator: User!
		createdAt: String!
		updatedAt: String!
	}

	type PostData {
		posts: [Post!]!
		totalPosts: Int!
	}

	type User {
		id: ID!
		name: String!
		email: String!
		status: String!
		posts: [Post!]!
	}

	type AuthData {
		userId: String!
		token: String!
	}

	input UserInputData {
		email: String!
		password: String!
		name: String!
	}

	input PostInputData {
		title: String!
		content: String!
		imageUrl: String!
	}
`
