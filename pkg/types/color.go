package types

const Green = "#228B22"
const Red = "#800000"
