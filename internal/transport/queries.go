package transport

// The client speaks a fixed set of documents against one external schema.
// Batch create mutations are built per call by the importer.

// QueryColumnMetadata fetches the column schemas of a board, for both
// main items and sub-items.
const QueryColumnMetadata = `
query ColumnMetadata($boardId: ID!) {
  boards(ids: [$boardId]) {
    main_columns: columns {
      title
      id
      type
    }
    sub_columns: subitems_columns {
      id
      type
      column {
        title
      }
    }
  }
}`

// QueryItemsFiltered fetches the first page of a board's items with a
// server-side filter rule applied.
const QueryItemsFiltered = `
query BoardItemsFiltered($boardId: ID!, $rules: [ItemsQueryRule!]) {
  boards(ids: [$boardId]) {
    items_page(limit: 500, query_params: { rules: $rules }) {
      cursor
      items {
        id
        name
        group {
          title
        }
        columns: column_values {
          column {
            title
          }
          text
          display_value
        }
        subitems {
          id
          name
          columns: column_values {
            column {
              title
            }
            text
            display_value
          }
        }
      }
    }
  }
}`

// QueryItemsPage fetches a page of a board's items. Without $cursor it
// starts a full scan; with $cursor it continues one.
const QueryItemsPage = `
query BoardItemsPage($boardId: ID!, $cursor: String) {
  boards(ids: [$boardId]) {
    items_page(limit: 500, cursor: $cursor) {
      cursor
      items {
        id
        name
        group {
          title
        }
        columns: column_values {
          column {
            title
          }
          text
          display_value
        }
        subitems {
          id
          name
          columns: column_values {
            column {
              title
            }
            text
            display_value
          }
        }
      }
    }
  }
}`

// QueryItemCount fetches a board's total item count.
const QueryItemCount = `
query BoardItemCount($boardId: ID!) {
  boards(ids: [$boardId]) {
    items_count
  }
}`

// QueryBoardGroups lists the groups of a board.
const QueryBoardGroups = `
query BoardGroups($boardId: ID!) {
  boards(ids: [$boardId]) {
    groups {
      id
      title
    }
  }
}`

// MutationCreateGroup creates a named group on a board.
const MutationCreateGroup = `
mutation CreateGroup($boardId: ID!, $groupName: String!) {
  create_group(board_id: $boardId, group_name: $groupName) {
    id
  }
}`

// MutationDeleteGroup deletes a group from a board.
const MutationDeleteGroup = `
mutation DeleteGroup($boardId: ID!, $groupId: String!) {
  delete_group(board_id: $boardId, group_id: $groupId) {
    id
  }
}`
